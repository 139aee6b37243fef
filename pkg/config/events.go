// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"errors"
)

// Events configures where gateway notifications are published. Leaving Stream
// empty disables publishing.
type Events struct {
	Stream *EventStream
}

func (cfg Events) Validate() error {
	return cfg.Stream.Validate()
}

type EventStream struct {
	InMem *InMemStream
	Kafka *KafkaStream
}

func (cfg *EventStream) Validate() error {
	if cfg == nil {
		return nil
	}
	if cfg.InMem != nil && cfg.Kafka != nil {
		return errors.New("only one of inmem or kafka can be configured")
	}
	if cfg.InMem != nil && cfg.InMem.URL == "" {
		return errors.New("inmem: missing url")
	}
	if cfg.Kafka != nil {
		if len(cfg.Kafka.Brokers) == 0 {
			return errors.New("kafka: missing brokers")
		}
		if cfg.Kafka.Topic == "" {
			return errors.New("kafka: missing topic")
		}
	}
	return nil
}

type InMemStream struct {
	URL string
}

type KafkaStream struct {
	Brokers []string
	Topic   string
}
