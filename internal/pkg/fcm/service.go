package fcm

import (
	"context"
	"fmt"
	"sync"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"
)

type Service struct {
	client *messaging.Client
}

func NewService(ctx context.Context, credentialsPath string) (*Service, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("obtaining messaging client: %w", err)
	}

	return &Service{client: client}, nil
}

type Message struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

func (m *Message) toMessaging() *messaging.Message {
	return &messaging.Message{
		Token: m.Token,
		Data:  m.Data,
		Notification: &messaging.Notification{
			Title: m.Title,
			Body:  m.Body,
		},
	}
}

// batchSize is the FCM limit for a single SendAll call.
const batchSize = 500

// SendMessageBatch sends ms in parallel batches and returns the tokens FCM
// rejected. A non-nil error means at least one batch was not delivered at all.
func (s *Service) SendMessageBatch(ctx context.Context, ms []*Message) ([]string, error) {
	var (
		mu     sync.Mutex
		failed []string
	)

	g, ctx := errgroup.WithContext(ctx)
	for from := 0; from < len(ms); from += batchSize {
		batch := ms[from:min(from+batchSize, len(ms))]

		g.Go(func() error {
			messages := make([]*messaging.Message, len(batch))
			for i, m := range batch {
				messages[i] = m.toMessaging()
			}

			resp, err := s.client.SendAll(ctx, messages)
			if err != nil {
				return fmt.Errorf("send message batch: %w", err)
			}
			if resp.FailureCount == 0 {
				return nil
			}

			mu.Lock()
			defer mu.Unlock()
			for i, r := range resp.Responses {
				if !r.Success {
					failed = append(failed, batch[i].Token)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return failed, err
	}

	return failed, nil
}
