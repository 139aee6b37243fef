// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/moov-io/partnergate/pkg/config"

	"github.com/stretchr/testify/require"
	"gocloud.dev/pubsub"
)

func TestPublisher__inmem(t *testing.T) {
	ctx := context.Background()
	topicURL := "mem://partnergate-events"

	pub, err := NewPublisher(ctx, config.Events{
		Stream: &config.EventStream{
			InMem: &config.InMemStream{URL: topicURL},
		},
	})
	require.NoError(t, err)
	defer pub.Shutdown(ctx)

	sub, err := pubsub.OpenSubscription(ctx, topicURL)
	require.NoError(t, err)
	defer sub.Shutdown(ctx)

	evt := NewEvent(TransferCreated, "https://api.example.com/transfers/xfer-1")
	require.NoError(t, pub.Publish(ctx, evt))

	msg, err := sub.Receive(ctx)
	require.NoError(t, err)
	msg.Ack()

	require.Equal(t, evt.EventID, msg.Metadata["eventID"])
	require.Equal(t, "transfer.created", msg.Metadata["type"])

	var got Event
	require.NoError(t, json.Unmarshal(msg.Body, &got))
	require.Equal(t, evt.Location, got.Location)
	require.Equal(t, TransferCreated, got.Type)
}

func TestPublisher__discard(t *testing.T) {
	ctx := context.Background()

	pub, err := NewPublisher(ctx, config.Events{})
	require.NoError(t, err)
	require.NoError(t, pub.Publish(ctx, NewEvent(CustomerCreated, "https://api.example.com/customers/abc123")))
	require.NoError(t, pub.Shutdown(ctx))
}

func TestPublisher__unknown(t *testing.T) {
	_, err := NewPublisher(context.Background(), config.Events{
		Stream: &config.EventStream{},
	})
	require.Error(t, err)
}

func TestNewEvent(t *testing.T) {
	evt := NewEvent(CustomerCreated, "https://api.example.com/customers/abc123")
	require.NotEmpty(t, evt.EventID)
	require.False(t, evt.Created.IsZero())

	other := NewEvent(CustomerCreated, evt.Location)
	require.NotEqual(t, evt.EventID, other.EventID)
}
