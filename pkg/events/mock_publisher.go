// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package events

import (
	"context"
)

type MockPublisher struct {
	Events []Event
	Err    error
}

func (pub *MockPublisher) Publish(ctx context.Context, evt Event) error {
	if pub.Err != nil {
		return pub.Err
	}
	pub.Events = append(pub.Events, evt)
	return nil
}

func (pub *MockPublisher) Shutdown(ctx context.Context) error {
	return nil
}
