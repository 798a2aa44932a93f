package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"ticketooz/common/constant"
	jetsteamMock "ticketooz/common/jetstream/mocks"
	"ticketooz/model"
	"ticketooz/outbound/store"
	"ticketooz/ticketpdf"
)

var _ jetstream.Publisher = (*jetsteamMock.MockPublisher)(nil)

type TicketEventTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	publisher *jetsteamMock.MockPublisher

	PgxMock   pgxmock.PgxPoolIface
	Cache     *redis.Client
	CacheMock redismock.ClientMock

	ticketEvent TicketEvent
}

func (s *TicketEventTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.publisher = jetsteamMock.NewMockPublisher(s.ctrl)

	pool, err := pgxmock.NewPool()
	if err != nil {
		s.T().Fatalf("failed to create pgxmock pool: %v", err)
	}
	s.PgxMock = pool

	rdb, mock := redismock.NewClientMock()
	s.Cache = rdb
	s.CacheMock = mock

	bookingStore := &store.BookingStore{Db: pool, Cache: rdb}

	s.ticketEvent = TicketEvent{
		Store:       bookingStore,
		VerifyIndex: &store.VerifyIndex{Cache: rdb},
		Publisher:   s.publisher,
		Composer: ticketpdf.Composer{
			Origin: "https://ticketooz.com",
		},
		InrFormatter: message.NewPrinter(language.English),
		Timeout:      10 * time.Second,
	}

	slog.SetLogLoggerLevel(slog.LevelDebug)
}

func (s *TicketEventTestSuite) TearDownTest() {
	s.PgxMock.Close()
	s.ctrl.Finish()
}

func TestTicketEventTestSuite(t *testing.T) {
	suite.Run(t, new(TicketEventTestSuite))
}

var bookingColumns = []string{
	"id", "quantity", "total_price", "convenience_fee", "booked_at",
	"seats", "occurrence_id", "occurrence_ticket_category_id",
	"customer_name", "customer_email", "customer_phone",
	"e_id", "name", "start_at", "venue_name", "venue_city", "address",
	"category", "sub_category", "language", "duration",
	"genres", "artists", "is_recurring", "event_time",
	"occurrence_date", "occurrence_time",
}

func (s *TicketEventTestSuite) bookingRow(id string) *pgxmock.Rows {
	bookedAt := time.Date(2025, 7, 15, 18, 30, 0, 0, time.UTC)
	startAt := time.Date(2025, 7, 20, 19, 0, 0, 0, time.UTC)

	return pgxmock.NewRows(bookingColumns).AddRow(
		id, 2, 1000.0, 0.0, bookedAt,
		[]byte(nil), nil, nil,
		"Asha Verma", "asha@example.com", "+91 98765 43210",
		"event1", "Summer Beats", startAt, "Sunset Arena", "Mumbai", "12 Marine Drive",
		"Music", "Concert", "Hindi", "3h",
		[]byte(nil), []byte(nil), false, nil,
		nil, nil,
	)
}

func (s *TicketEventTestSuite) TestBookingCompletedHandler() {
	testCases := []struct {
		name        string
		msg         []byte
		setupMock   func()
		expectError bool
	}{
		{
			name:      "invalid json is dropped",
			msg:       []byte(`{invalid json`),
			setupMock: func() {},
		},
		{
			name: "booking load error",
			msg:  s.encode(model.BookingCompletedEventMessage{BookingID: "booking1"}),
			setupMock: func() {
				s.PgxMock.ExpectQuery("FROM bookings b").
					WithArgs("booking1").
					WillReturnError(fmt.Errorf("database error"))
			},
			expectError: true,
		},
		{
			name: "publish error",
			msg:  s.encode(model.BookingCompletedEventMessage{BookingID: "booking1"}),
			setupMock: func() {
				s.PgxMock.ExpectQuery("FROM bookings b").
					WithArgs("booking1").
					WillReturnRows(s.bookingRow("booking1"))
				s.CacheMock.Regexp().
					ExpectSetNX(`invoice:INV-250715-[A-Z0-9]{1,6}`, "booking1", time.Duration(0)).
					SetVal(true)
				s.publisher.EXPECT().Publish(
					gomock.Any(),
					constant.SubjectSendEmail,
					gomock.Any(),
				).Return(nil, fmt.Errorf("publish error"))
			},
			expectError: true,
		},
		{
			name: "success",
			msg:  s.encode(model.BookingCompletedEventMessage{BookingID: "booking1"}),
			setupMock: func() {
				s.PgxMock.ExpectQuery("FROM bookings b").
					WithArgs("booking1").
					WillReturnRows(s.bookingRow("booking1"))
				s.CacheMock.Regexp().
					ExpectSetNX(`invoice:INV-250715-[A-Z0-9]{1,6}`, "booking1", time.Duration(0)).
					SetVal(true)
				s.publisher.EXPECT().Publish(
					gomock.Any(),
					constant.SubjectSendEmail,
					gomock.Any(),
				).DoAndReturn(func(_ context.Context, _ string, payload []byte, _ ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
					var email model.SendEmailEventMessage
					s.Require().NoError(json.Unmarshal(payload, &email))
					s.Equal("asha@example.com", email.To)
					s.Equal("Your Ticketooz E-Ticket", email.Subject)
					s.NotEmpty(email.Attachment)
					s.Contains(email.AttachmentFilename, "ticket-INV-250715-")
					return nil, nil
				})
			},
		},
		{
			name: "verify index failure does not block delivery",
			msg:  s.encode(model.BookingCompletedEventMessage{BookingID: "booking1"}),
			setupMock: func() {
				s.PgxMock.ExpectQuery("FROM bookings b").
					WithArgs("booking1").
					WillReturnRows(s.bookingRow("booking1"))
				s.CacheMock.Regexp().
					ExpectSetNX(`invoice:INV-250715-[A-Z0-9]{1,6}`, "booking1", time.Duration(0)).
					SetErr(redis.ErrClosed)
				s.publisher.EXPECT().Publish(
					gomock.Any(),
					constant.SubjectSendEmail,
					gomock.Any(),
				).Return(nil, nil)
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			tc.setupMock()

			err := s.ticketEvent.BookingCompletedHandler(context.Background(), tc.msg)

			if tc.expectError {
				s.Error(err)
			} else {
				s.NoError(err)
			}

			s.NoError(s.PgxMock.ExpectationsWereMet())
		})
	}
}

func (s *TicketEventTestSuite) encode(msg model.BookingCompletedEventMessage) []byte {
	data, err := json.Marshal(msg)
	s.Require().NoError(err)
	return data
}
