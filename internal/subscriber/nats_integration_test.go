package subscriber

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/abgdnv/musicshop/pkg/config"
	pnats "github.com/abgdnv/musicshop/pkg/nats"
	"github.com/google/uuid"
	natsgo "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/nats"
	"golang.org/x/sync/errgroup"
)

// skipIntegrationTests is the environment variable that controls whether to skip integration tests.
const skipIntegrationTests = "SHOP_SKIP_INTEGRATION_TESTS"
const natsImg = "nats:2.11.6-alpine"

// SubscriberSuite runs the receipts subscriber against a real JetStream server.
type SubscriberSuite struct {
	suite.Suite
	ctx           context.Context
	logger        *slog.Logger
	natsContainer *nats.NATSContainer
	nc            *natsgo.Conn
	js            jetstream.JetStream
}

func (s *SubscriberSuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var err error
	s.natsContainer, err = nats.Run(s.ctx, natsImg)
	require.NoError(s.T(), err, "Failed to run NATS container")

	natsURL, err := s.natsContainer.ConnectionString(s.ctx)
	require.NoError(s.T(), err)
	s.nc, err = pnats.NewClient(natsURL, 5*time.Second)
	require.NoError(s.T(), err, "Failed to connect to NATS")
	s.js, err = pnats.NewJetStreamContext(s.nc)
	require.NoError(s.T(), err, "Failed to get JetStream context")
}

func (s *SubscriberSuite) TearDownSuite() {
	s.nc.Close()
	if err := testcontainers.TerminateContainer(s.natsContainer); err != nil {
		s.logger.Error("Failed to terminate NATS container", "error", err)
	}
}

func TestSubscriberIntegration(t *testing.T) {
	if os.Getenv(skipIntegrationTests) == "1" {
		t.Skip("Skipping integration tests based on " + skipIntegrationTests + " env var")
	}
	suite.Run(t, new(SubscriberSuite))
}

type testCaseConfig struct {
	name     string
	payloads func() [][]byte
	handled  uint64
}

func (s *SubscriberSuite) TestReceiveMessage() {
	valid := func() []byte {
		payload, _ := testSaleEvent().Payload()
		return payload
	}
	testCases := []testCaseConfig{
		{
			name:     "receipt for recorded sale",
			payloads: func() [][]byte { return [][]byte{valid()} },
			handled:  1,
		},
		{
			name:     "invalid payload does not stop the worker",
			payloads: func() [][]byte { return [][]byte{[]byte("invalid payload"), valid()} },
			handled:  2,
		},
	}
	for _, tc := range testCases {
		s.T().Run(tc.name, func(t *testing.T) {
			s.runTest(t, tc)
		})
	}
}

func (s *SubscriberSuite) runTest(t *testing.T, tc testCaseConfig) {
	// given
	streamName := "STREAM_" + uuid.NewString()
	subject := "sales." + uuid.NewString()
	cfg := config.SubscriberConfig{
		Stream:   streamName,
		Subject:  subject,
		Consumer: "CONSUMER_" + uuid.NewString(),
		Batch:    1,
		Timeout:  200 * time.Millisecond,
		Interval: 200 * time.Millisecond,
		Workers:  1,
	}
	stream, err := pnats.EnsureStream(s.ctx, s.js, streamName, subject)
	require.NoError(t, err)

	testCtx, cancel := context.WithTimeout(s.ctx, 6*time.Second)
	g, gCtx := errgroup.WithContext(testCtx)
	ready := make(chan struct{})
	t.Cleanup(func() {
		cancel()
		require.ErrorIs(t, g.Wait(), context.Canceled)
	})
	g.Go(func() error {
		return Start(gCtx, s.js, cfg, s.logger, func() { close(ready) })
	})
	<-ready

	// when
	for _, p := range tc.payloads() {
		_, err := s.js.Publish(s.ctx, subject, p)
		require.NoError(t, err)
	}

	// then
	require.Eventually(t, func() bool {
		consumer, err := stream.Consumer(s.ctx, cfg.Consumer)
		if err != nil {
			return false
		}
		info, err := consumer.Info(s.ctx)
		if err != nil {
			return false
		}
		return info.NumPending == 0 && info.NumAckPending == 0 && info.Delivered.Stream == tc.handled
	}, 5*time.Second, 100*time.Millisecond, "messages were not processed in time")
}
