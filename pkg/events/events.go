// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

// Package events publishes notifications about resources created at Dwolla.
//
// Messages go to a gocloud.dev/pubsub topic. In-memory (mem://) and Kafka topics are
// supported, see https://gocloud.dev/howto/pubsub/publish/
package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/moov-io/base"
	"github.com/moov-io/partnergate/pkg/config"

	"github.com/Shopify/sarama"
	"gocloud.dev/pubsub"
	"gocloud.dev/pubsub/kafkapubsub"
	_ "gocloud.dev/pubsub/mempubsub"
)

type Type string

const (
	CustomerCreated      Type = "customer.created"
	FundingSourceCreated Type = "funding_source.created"
	TransferCreated      Type = "transfer.created"
)

// Event announces a resource created at Dwolla. Location is the resource's URL.
type Event struct {
	EventID  string    `json:"eventID"`
	Type     Type      `json:"type"`
	Location string    `json:"location"`
	Created  time.Time `json:"created"`
}

func NewEvent(eventType Type, location string) Event {
	return Event{
		EventID:  base.ID(),
		Type:     eventType,
		Location: location,
		Created:  time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, evt Event) error
	Shutdown(ctx context.Context) error
}

// NewPublisher opens the configured topic. Without a stream configured events are discarded.
func NewPublisher(ctx context.Context, cfg config.Events) (Publisher, error) {
	if cfg.Stream == nil {
		return Discard(), nil
	}
	if cfg.Stream.InMem != nil {
		topic, err := pubsub.OpenTopic(ctx, cfg.Stream.InMem.URL)
		if err != nil {
			return nil, err
		}
		return &streamPublisher{topic: topic}, nil
	}
	if cfg.Stream.Kafka != nil {
		return kafkaPublisher(cfg.Stream.Kafka)
	}
	return nil, errors.New("unknown events stream config")
}

// kafkaPublisher sends with a sarama.SyncProducer, which requires
// Producer.Return.Successes to be set.
func kafkaPublisher(cfg *config.KafkaStream) (*streamPublisher, error) {
	conf := sarama.NewConfig()
	conf.Producer.Return.Successes = true

	topic, err := kafkapubsub.OpenTopic(cfg.Brokers, conf, cfg.Topic, nil)
	if err != nil {
		return nil, err
	}
	return &streamPublisher{topic: topic}, nil
}

type streamPublisher struct {
	topic *pubsub.Topic
}

func (pub *streamPublisher) Publish(ctx context.Context, evt Event) error {
	msg, err := buildMessage(evt)
	if err != nil {
		return err
	}
	return pub.topic.Send(ctx, msg)
}

func (pub *streamPublisher) Shutdown(ctx context.Context) error {
	return pub.topic.Shutdown(ctx)
}

func buildMessage(evt Event) (*pubsub.Message, error) {
	bs, err := json.Marshal(evt)
	if err != nil {
		return nil, err
	}
	return &pubsub.Message{
		Body: bs,
		Metadata: map[string]string{
			"eventID": evt.EventID,
			"type":    string(evt.Type),
		},
	}, nil
}

// Discard returns a Publisher which drops every event.
func Discard() Publisher {
	return &discardPublisher{}
}

type discardPublisher struct{}

func (*discardPublisher) Publish(ctx context.Context, evt Event) error {
	return nil
}

func (*discardPublisher) Shutdown(ctx context.Context) error {
	return nil
}
