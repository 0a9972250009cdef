package schedule

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konczyk/irrops/internal/models"
)

func TestAssignRespectsAircraftLocation(t *testing.T) {
	fx := &fixture{}
	fx.addAirport("KRK", 30)
	fx.addAirport("WAW", 30)
	fx.addAirport("GDN", 30)
	fx.addAircraft("PLANE_1", "KRK")
	fx.addFlight("FLIGHT_1", "KRK", "WAW", 100, 200)
	fx.addFlight("FLIGHT_2", "KRK", "GDN", 300, 400)

	s := fx.build()
	s.Assign()

	fs := s.Flights()
	assert.Equal(t, "PLANE_1", fs[0].AircraftID)
	// the aircraft ends up in WAW, nothing is left in KRK
	assert.Empty(t, fs[1].AircraftID)
	assert.Equal(t, models.ReasonWaiting, fs[1].Reason)
}

func TestAssignRejectsTurnaroundConflict(t *testing.T) {
	fx := &fixture{}
	fx.addAirport("KRK", 30)
	fx.addAirport("WAW", 30)
	fx.addAirport("GDN", 30)
	fx.addAircraft("PLANE_1", "KRK")
	fx.addFlight("FLIGHT_1", "KRK", "WAW", 100, 200)
	fx.addFlight("FLIGHT_2", "WAW", "GDN", 220, 300)

	s := fx.build()
	s.Assign()

	fs := s.Flights()
	assert.Equal(t, "PLANE_1", fs[0].AircraftID)
	// ready at 230, twenty minutes too late for the connection
	assert.Empty(t, fs[1].AircraftID)
}

func TestAssignAllowsExactTurnaroundFit(t *testing.T) {
	fx := &fixture{}
	fx.addAirport("KRK", 30)
	fx.addAirport("WAW", 30)
	fx.addAirport("GDN", 30)
	fx.addAircraft("PLANE_1", "KRK")
	fx.addFlight("FLIGHT_1", "KRK", "WAW", 100, 200)
	fx.addFlight("FLIGHT_2", "WAW", "GDN", 230, 300)

	s := fx.build()
	s.Assign()

	fs := s.Flights()
	assert.Equal(t, "PLANE_1", fs[0].AircraftID)
	assert.Equal(t, "PLANE_1", fs[1].AircraftID)
}

func TestAssignChainsContinuousRotation(t *testing.T) {
	fx := &fixture{}
	fx.addAirport("KRK", 30)
	fx.addAirport("WAW", 30)
	fx.addAirport("GDN", 30)
	fx.addAircraft("PLANE_1", "KRK")
	fx.addFlight("FLIGHT_1", "KRK", "WAW", 100, 200)
	fx.addFlight("FLIGHT_2", "WAW", "GDN", 240, 300)

	s := fx.build()
	s.Assign()

	fs := s.Flights()
	assert.Equal(t, "PLANE_1", fs[0].AircraftID)
	assert.Equal(t, "PLANE_1", fs[1].AircraftID)
	assert.Equal(t, models.StatusScheduled, fs[0].Status)
	assert.Equal(t, models.StatusScheduled, fs[1].Status)
}

func TestAssignPrefersLowestAircraftID(t *testing.T) {
	fx := &fixture{}
	fx.addAirport("GDN", 30)
	fx.addAirport("WAW", 30)
	fx.addAircraft("A", "GDN")
	fx.addAircraft("B", "GDN")
	fx.addFlight("FLIGHT_1", "GDN", "WAW", 100, 200)

	s := fx.build()
	s.Assign()

	assert.Equal(t, "A", s.Flights()[0].AircraftID)
}

func TestAssignSkipsAircraftInMaintenance(t *testing.T) {
	fx := &fixture{}
	fx.addAirport("KRK", 30)
	fx.addAirport("WAW", 30)
	fx.addAircraft("PLANE_1", "KRK", availability(150, 250, ""))
	fx.addFlight("FLIGHT_1", "KRK", "WAW", 100, 200)

	s := fx.build()
	s.Assign()

	assert.Empty(t, s.Flights()[0].AircraftID)
}

func TestAssignHonorsLocationPinnedMaintenance(t *testing.T) {
	fx := &fixture{}
	fx.addAirport("KRK", 30)
	fx.addAirport("WAW", 30)
	fx.addAirport("GDN", 30)
	// the aircraft must sit out 250..300 in GDN
	fx.addAircraft("PLANE_1", "KRK", availability(250, 300, "GDN"))
	fx.addFlight("FLIGHT_1", "KRK", "WAW", 100, 200)
	fx.addFlight("FLIGHT_2", "WAW", "GDN", 400, 500)

	s := fx.build()
	s.Assign()

	fs := s.Flights()
	assert.Equal(t, "PLANE_1", fs[0].AircraftID)
	// after FLIGHT_1 it is parked in WAW, not where the window wants it
	assert.Empty(t, fs[1].AircraftID)
}

func TestAssignHandlesDuplicateFlightIDs(t *testing.T) {
	fx := &fixture{}
	fx.addAirport("KRK", 30)
	fx.addAirport("WAW", 30)
	fx.addAirport("GDN", 30)
	fx.addAircraft("PLANE_1", "KRK")
	fx.addFlight("FLIGHT_1", "KRK", "WAW", 1200, 1500)
	fx.addFlight("FLIGHT_1", "KRK", "GDN", 1100, 1800)

	s := fx.build()
	s.Assign()

	fs := s.Flights()
	// the earlier departure wins the aircraft, its twin overlaps and loses
	assert.Equal(t, models.Time(1100), fs[0].Departure)
	assert.Equal(t, "PLANE_1", fs[0].AircraftID)
	assert.Empty(t, fs[1].AircraftID)
}

func TestAssignRecoversAfterMaintenanceBreak(t *testing.T) {
	fx := &fixture{}
	fx.addAirport("KRK", 30)
	fx.addAirport("WAW", 30)
	fx.addAirport("WRO", 30)
	fx.addAircraft("PLANE_1", "KRK", availability(600, 800, ""))
	fx.addAircraft("PLANE_2", "KRK")
	fx.addAssigned("FLIGHT_1", "PLANE_1", "KRK", "WRO", 200, 500)
	fx.addAssigned("FLIGHT_2", "PLANE_1", "WRO", "WAW", 1800, 2000)

	s := fx.build()
	s.ApplyDelay("FLIGHT_1", 400)

	fs := s.Flights()
	assert.Empty(t, fs[0].AircraftID)
	assert.Equal(t, models.Time(600), fs[0].Departure)
	assert.Equal(t, models.Time(900), fs[0].Arrival)
	assert.Equal(t, models.ReasonAircraftMaintenance, fs[0].Reason)

	assert.Empty(t, fs[1].AircraftID)
	assert.Equal(t, models.Time(1800), fs[1].Departure)
	assert.Equal(t, models.Time(2000), fs[1].Arrival)
	assert.Equal(t, models.ReasonBrokenChain, fs[1].Reason)

	s.Assign()

	fs = s.Flights()
	// the spare picks up the whole rotation, PLANE_1 stays grounded
	assert.Equal(t, "PLANE_2", fs[0].AircraftID)
	assert.Equal(t, models.StatusScheduled, fs[0].Status)
	assert.Equal(t, "PLANE_2", fs[1].AircraftID)
	assert.Equal(t, models.StatusScheduled, fs[1].Status)
}

func TestAssignIsIdempotent(t *testing.T) {
	fx := &fixture{}
	fx.addAirport("KRK", 30)
	fx.addAirport("WAW", 30)
	fx.addAirport("GDN", 30)
	fx.addAircraft("PLANE_1", "KRK")
	fx.addAircraft("PLANE_2", "WAW")
	fx.addFlight("FLIGHT_1", "KRK", "WAW", 100, 200)
	fx.addFlight("FLIGHT_2", "WAW", "GDN", 240, 300)
	fx.addFlight("FLIGHT_3", "GDN", "KRK", 1000, 1100)

	s := fx.build()
	s.Assign()
	before := append([]models.Flight(nil), s.Flights()...)

	s.Assign()

	assert.Equal(t, before, s.Flights())
}

func TestAssignPanicsOnCorruptRotation(t *testing.T) {
	fx := &fixture{}
	fx.addAirport("KRK", 30)
	fx.addAirport("WAW", 30)
	fx.addAircraft("PLANE_1", "WAW")
	// assigned rotation starting away from the aircraft's initial location
	fx.addAssigned("FLIGHT_1", "PLANE_1", "KRK", "WAW", 100, 200)

	s := fx.build()
	require.Panics(t, func() { s.Assign() })
}

func TestAssignRandomRotationsStayConsistent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	mtts := map[string]models.Time{"AP_1": 20, "AP_2": 45, "AP_3": 60}

	for iter := 0; iter < 150; iter++ {
		fx := &fixture{}
		fx.addAirport("AP_1", 20)
		fx.addAirport("AP_2", 45)
		fx.addAirport("AP_3", 60)
		for i, n := 0, 1+rng.Intn(4); i < n; i++ {
			fx.addAircraft(fmt.Sprintf("AC_%d", 1+rng.Intn(3)), fmt.Sprintf("AP_%d", 1+rng.Intn(3)))
		}
		for i, n := 0, 1+rng.Intn(29); i < n; i++ {
			dep := models.Time(rng.Intn(2500))
			dur := models.Time(10 + rng.Intn(990))
			fx.addFlight(
				fmt.Sprintf("FL_%d", 1+rng.Intn(3)),
				fmt.Sprintf("AP_%d", 1+rng.Intn(3)),
				fmt.Sprintf("AP_%d", 1+rng.Intn(3)),
				dep, dep+dur,
			)
		}

		s := fx.build()
		s.Assign()

		initial := make(map[string]string)
		for _, a := range s.Aircraft() {
			initial[a.ID] = a.InitialLocation
		}
		rotations := make(map[string][]models.Flight)
		for _, f := range s.Flights() {
			if f.AircraftID != "" {
				rotations[f.AircraftID] = append(rotations[f.AircraftID], f)
			}
		}
		for acID, fs := range rotations {
			sort.SliceStable(fs, func(i, j int) bool { return fs[i].Departure < fs[j].Departure })
			require.Equal(t, initial[acID], fs[0].Origin,
				"iter %d: %s first leg %s starts at %s", iter, acID, fs[0].ID, fs[0].Origin)
			for i := 1; i < len(fs); i++ {
				prev, next := fs[i-1], fs[i]
				require.Equal(t, prev.Destination, next.Origin,
					"iter %d: %s broken continuity between %s and %s", iter, acID, prev.ID, next.ID)
				require.GreaterOrEqual(t, next.Departure, prev.Arrival+mtts[prev.Destination],
					"iter %d: %s turnaround too short between %s and %s", iter, acID, prev.ID, next.ID)
			}
		}
	}
}
