//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"pitchbook/internal/handler/api"
	"pitchbook/internal/infra"
	"pitchbook/internal/pkg/clock"
	"pitchbook/internal/usecase/queries"
	"pitchbook/tests/common/httptest"
	queriesmock "pitchbook/tests/mock/queries"
)

var testToday = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

type PitchHandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	mockCtrl  *gomock.Controller
	mockStore *queriesmock.MockPitchReadStore
}

func (s *PitchHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockStore = queriesmock.NewMockPitchReadStore(s.mockCtrl)

	c := clock.NewMockClock(testToday.Add(10 * time.Hour))
	handler := api.NewPitchHandler(
		queries.NewPitchQueryService(s.mockStore),
		queries.NewAvailabilityQueryService(s.mockStore, c),
	)

	s.router.GET("/pitches", handler.ListPitches)
	s.router.GET("/pitches/:id", handler.GetPitch)
	s.router.GET("/pitches/:id/slots", handler.ListSlots)
}

func (s *PitchHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPitchHandlerSuite(t *testing.T) {
	suite.Run(t, new(PitchHandlerTestSuite))
}

func (s *PitchHandlerTestSuite) TestListPitches() {
	views := []*queries.PitchView{
		{ID: uuid.New(), Name: "Court A", PitchType: "futsal", IsAvailable: true},
		{ID: uuid.New(), Name: "Court B", PitchType: "football_7", IsAvailable: false},
	}

	s.Run("returns the catalog", func() {
		s.mockStore.EXPECT().FindAll(gomock.Any()).Return(views, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/pitches", nil, "")

		var got []*queries.PitchView
		httptest.DecodeResponse(s.T(), w, http.StatusOK, &got)
		s.Len(got, 2)
		s.Equal("Court A", got[0].Name)
	})

	s.Run("store failure maps to 500", func() {
		s.mockStore.EXPECT().FindAll(gomock.Any()).
			Return(nil, infra.NewDBFailure(errors.New("connection reset")))

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/pitches", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusInternalServerError, "Internal server error")
	})
}

func (s *PitchHandlerTestSuite) TestGetPitch() {
	pitchID := uuid.New()

	s.Run("returns the pitch", func() {
		view := &queries.PitchView{ID: pitchID, Name: "Court A", PitchType: "futsal"}
		s.mockStore.EXPECT().FindByID(gomock.Any(), pitchID).Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/pitches/"+pitchID.String(), nil, "")

		var got queries.PitchView
		httptest.DecodeResponse(s.T(), w, http.StatusOK, &got)
		s.Equal(pitchID, got.ID)
	})

	s.Run("unknown pitch maps to 404", func() {
		s.mockStore.EXPECT().FindByID(gomock.Any(), pitchID).
			Return(nil, infra.NewNotFound(errors.New("no rows")))

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/pitches/"+pitchID.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Pitch not found")
	})

	s.Run("malformed id maps to 400", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/pitches/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid pitch ID")
	})
}

func (s *PitchHandlerTestSuite) TestListSlots() {
	pitchID := uuid.New()
	base := "/pitches/" + pitchID.String() + "/slots"

	pitchView := &queries.PitchView{ID: pitchID, Name: "Court A", IsAvailable: true}
	rows := []*queries.OfferingRow{
		{
			OfferingID:       uuid.New(),
			SlotID:           uuid.New(),
			SlotName:         "Morning",
			StartTime:        "07:00",
			EndTime:          "09:00",
			BasePricePerHour: decimal.NewFromInt(100000),
			HasActiveBooking: true,
		},
		{
			OfferingID:       uuid.New(),
			SlotID:           uuid.New(),
			SlotName:         "Evening",
			StartTime:        "18:00",
			EndTime:          "20:00",
			BasePricePerHour: decimal.NewFromInt(100000),
		},
	}

	s.Run("lists slots for the date", func() {
		date := testToday.AddDate(0, 0, 3)
		s.mockStore.EXPECT().FindByID(gomock.Any(), pitchID).Return(pitchView, nil)
		s.mockStore.EXPECT().FindOfferingsForDate(gomock.Any(), pitchID, date).Return(rows, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, base+"?date=2026-09-04", nil, "")

		var got []*queries.SlotAvailabilityView
		httptest.DecodeResponse(s.T(), w, http.StatusOK, &got)
		s.Require().Len(got, 2)
		s.False(got[0].Available)
		s.True(got[1].Available)
	})

	s.Run("only_available filters", func() {
		date := testToday.AddDate(0, 0, 3)
		s.mockStore.EXPECT().FindByID(gomock.Any(), pitchID).Return(pitchView, nil)
		s.mockStore.EXPECT().FindOfferingsForDate(gomock.Any(), pitchID, date).Return(rows, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, base+"?date=2026-09-04&only_available=true", nil, "")

		var got []*queries.SlotAvailabilityView
		httptest.DecodeResponse(s.T(), w, http.StatusOK, &got)
		s.Require().Len(got, 1)
		s.Equal("Evening", got[0].Name)
	})

	s.Run("missing date maps to 400", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, base, nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "'date' is required")
	})

	s.Run("malformed date maps to 400", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, base+"?date=04-09-2026", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid date format")
	})

	s.Run("past date maps to 400", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, base+"?date=2026-08-30", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Date is in the past")
	})
}
