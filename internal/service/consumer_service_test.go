package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/require"

	"internship-chatbot-be/internal/pkg/logger"
)

type recordingIngestor struct {
	mu    sync.Mutex
	pairs [][2]string
	ok    bool
}

func (r *recordingIngestor) IngestQAPair(_ context.Context, question, answer string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pairs = append(r.pairs, [2]string{question, answer})
	return r.ok
}

func (r *recordingIngestor) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pairs)
}

func TestConsumerIngestsPublishedPair(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	ingestor := &recordingIngestor{ok: true}
	consumer := NewConsumerService(pubSub, "INGEST_QA_PAIR", ingestor, logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService("INGEST_QA_PAIR", pubSub)
	require.NoError(t, publisher.Publish(ctx, []byte(`{"question":"What is STEP?","answer":"An early internship."}`)))

	require.Eventually(t, func() bool {
		return ingestor.count() == 1
	}, 2*time.Second, 10*time.Millisecond)

	ingestor.mu.Lock()
	defer ingestor.mu.Unlock()
	require.Equal(t, "What is STEP?", ingestor.pairs[0][0])
	require.Equal(t, "An early internship.", ingestor.pairs[0][1])
}

func TestConsumerAcksMalformedMessage(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	ingestor := &recordingIngestor{ok: true}
	consumer := NewConsumerService(pubSub, "INGEST_QA_PAIR", ingestor, logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService("INGEST_QA_PAIR", pubSub)
	require.NoError(t, publisher.Publish(ctx, []byte(`not json`)))
	// Empty fields fail validation and are acked, not retried.
	require.NoError(t, publisher.Publish(ctx, []byte(`{"question":"","answer":""}`)))

	// A well-formed pair published afterwards still flows through, which
	// also proves the malformed ones were acked rather than blocking.
	require.NoError(t, publisher.Publish(ctx, []byte(`{"question":"q","answer":"a"}`)))

	require.Eventually(t, func() bool {
		return ingestor.count() == 1
	}, 2*time.Second, 10*time.Millisecond)
	require.Equal(t, [2]string{"q", "a"}, ingestor.pairs[0])
}
