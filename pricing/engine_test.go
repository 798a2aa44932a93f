package pricing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"ticketooz/common/errs"
	"ticketooz/model"
)

type stubStore struct {
	booking     model.BookingRecord
	bookingErr  error
	category    model.OccurrenceCategory
	categoryErr error

	categoryCalls int
}

func (s *stubStore) FindBookingByID(ctx context.Context, id string) (model.BookingRecord, error) {
	if s.bookingErr != nil {
		return model.BookingRecord{}, s.bookingErr
	}
	return s.booking, nil
}

func (s *stubStore) FindOccurrenceCategoryByID(ctx context.Context, id string) (model.OccurrenceCategory, error) {
	s.categoryCalls++
	if s.categoryErr != nil {
		return model.OccurrenceCategory{}, s.categoryErr
	}
	return s.category, nil
}

type EngineTestSuite struct {
	suite.Suite

	store  *stubStore
	engine Engine
}

func (s *EngineTestSuite) SetupTest() {
	s.store = &stubStore{}
	s.engine = Engine{Store: s.store, Timeout: 5 * time.Second}
}

func TestEngineTestSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *model.FlexInt {
	f := model.FlexInt(v)
	return &f
}

func (s *EngineTestSuite) TestBookingLoadFailure() {
	s.store.bookingErr = errors.New("connection refused")

	pr, err := s.engine.Reconcile(context.Background(), "b-1")

	s.Require().Error(err)
	s.Nil(pr)

	var fetchErr *errs.DataFetchError
	s.True(errors.As(err, &fetchErr))
}

func (s *EngineTestSuite) TestOccurrenceCategoryPath() {
	s.store.booking = model.BookingRecord{
		ID:                   "b-1",
		Quantity:             3,
		TotalPrice:           1800,
		ConvenienceFee:       118,
		OccurrenceID:         "occ-1",
		OccurrenceCategoryID: "cat-1",
		CustomerName:         "John Doe",
		// A seat array that must be ignored while the category path wins.
		Seats: []model.SeatRecord{{SeatCategory: "VIP", Price: floatPtr(999), Quantity: intPtr(1)}},
	}
	s.store.category = model.OccurrenceCategory{ID: "cat-1", Name: "Balcony", BasePrice: 550}

	pr, err := s.engine.Reconcile(context.Background(), "b-1")

	s.Require().NoError(err)
	s.Require().Len(pr.Breakdown, 1)
	s.Equal("Balcony", pr.Breakdown[0].Category)
	s.Equal(3, pr.Breakdown[0].Quantity)
	s.InDelta(550.0, pr.Breakdown[0].UnitPrice, 1e-9)
	s.InDelta(1650.0, pr.Breakdown[0].LineTotal, 1e-9)
	s.InDelta(1650.0, pr.BasePrice, 1e-9)
	s.InDelta(100.0, pr.ConvenienceFee, 1e-9)
	s.InDelta(18.0, pr.Tax, 1e-9)
	s.InDelta(1800.0, pr.TotalPrice, 1e-9)
	s.Equal("John", pr.Customer.FirstName)
	s.Equal("Doe", pr.Customer.LastName)
}

func (s *EngineTestSuite) TestCategoryLookupFailureDegradesToSeats() {
	s.store.booking = model.BookingRecord{
		ID:                   "b-1",
		Quantity:             2,
		TotalPrice:           782.60,
		ConvenienceFee:       82.60,
		OccurrenceID:         "occ-1",
		OccurrenceCategoryID: "cat-1",
		Seats: []model.SeatRecord{
			{SeatCategory: "VIP", Price: floatPtr(500), Quantity: intPtr(1)},
			{SeatCategory: "General", Price: floatPtr(200), Quantity: intPtr(1)},
		},
	}
	s.store.categoryErr = errors.New("category gone")

	pr, err := s.engine.Reconcile(context.Background(), "b-1")

	s.Require().NoError(err)
	s.Equal(1, s.store.categoryCalls)
	s.Require().Len(pr.Breakdown, 2)
	s.Equal(model.CategoryBreakdownEntry{Category: "VIP", Quantity: 1, UnitPrice: 500, LineTotal: 500}, pr.Breakdown[0])
	s.Equal(model.CategoryBreakdownEntry{Category: "General", Quantity: 1, UnitPrice: 200, LineTotal: 200}, pr.Breakdown[1])
	s.InDelta(700.0, pr.BasePrice, 1e-9)
	s.InDelta(70.0, pr.ConvenienceFee, 1e-9)
	s.InDelta(12.60, pr.Tax, 1e-9)
}

func (s *EngineTestSuite) TestSeatArrayPath() {
	s.store.booking = model.BookingRecord{
		ID:         "b-2",
		Quantity:   4,
		TotalPrice: 1000,
		Seats: []model.SeatRecord{
			{SeatCategory: "VIP", Price: floatPtr(300), Quantity: intPtr(2)},
			{Category: "Stalls", BasePrice: floatPtr(100)},
			{BasePrice: floatPtr(100), BookedQuantity: intPtr(2)},
		},
	}

	pr, err := s.engine.Reconcile(context.Background(), "b-2")

	s.Require().NoError(err)
	s.Require().Len(pr.Breakdown, 3)
	s.Equal(model.CategoryBreakdownEntry{Category: "VIP", Quantity: 2, UnitPrice: 300, LineTotal: 600}, pr.Breakdown[0])
	s.Equal(model.CategoryBreakdownEntry{Category: "Stalls", Quantity: 1, UnitPrice: 100, LineTotal: 100}, pr.Breakdown[1])
	s.Equal(model.CategoryBreakdownEntry{Category: "General", Quantity: 2, UnitPrice: 100, LineTotal: 200}, pr.Breakdown[2])

	totalQuantity := 0
	for _, entry := range pr.Breakdown {
		totalQuantity += entry.Quantity
	}
	s.Equal(5, totalQuantity)
}

func (s *EngineTestSuite) TestFlatFallbackPath() {
	s.store.booking = model.BookingRecord{
		ID:             "b-3",
		Quantity:       2,
		TotalPrice:     500,
		ConvenienceFee: 59,
	}

	pr, err := s.engine.Reconcile(context.Background(), "b-3")

	s.Require().NoError(err)
	s.Require().Len(pr.Breakdown, 1)
	s.Equal("General Admission", pr.Breakdown[0].Category)
	s.Equal(2, pr.Breakdown[0].Quantity)
	s.InDelta(441.0, pr.Breakdown[0].LineTotal, 1e-9)
	s.InDelta(441.0, pr.BasePrice, 1e-9)
	s.InDelta(50.0, pr.ConvenienceFee, 1e-9)
	s.InDelta(9.0, pr.Tax, 1e-9)
}

func (s *EngineTestSuite) TestNoOccurrenceLookupWithoutBothReferences() {
	s.store.booking = model.BookingRecord{
		ID:                   "b-4",
		Quantity:             1,
		TotalPrice:           100,
		OccurrenceCategoryID: "cat-1",
	}

	_, err := s.engine.Reconcile(context.Background(), "b-4")

	s.Require().NoError(err)
	s.Zero(s.store.categoryCalls)
}
