package solar

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/mooncaker816/learnmeeus/v3/coord"
	"github.com/mooncaker816/learnmeeus/v3/julian"
	"github.com/mooncaker816/learnmeeus/v3/sidereal"
	sun "github.com/mooncaker816/learnmeeus/v3/solar"
	"github.com/soniakeys/unit"
)

// MeeusSolarProvider implements SolarAltitudeProvider with the solar
// position algorithms from Meeus, "Astronomical Algorithms".
//
// It is pure computation and safe for concurrent use. The difference between
// UT and dynamical time (about a minute) is ignored; it moves the sun by less
// than a hundredth of a degree.
type MeeusSolarProvider struct{}

func NewMeeusSolarProvider() *MeeusSolarProvider {
	return &MeeusSolarProvider{}
}

func (p *MeeusSolarProvider) GetSolarAzimuth(ctx context.Context, lat, lon float64, at time.Time) (float64, error) {
	az, _, err := p.position(ctx, lat, lon, at)
	return az, err
}

func (p *MeeusSolarProvider) GetSolarAltitude(ctx context.Context, lat, lon float64, at time.Time) (float64, error) {
	_, alt, err := p.position(ctx, lat, lon, at)
	return alt, err
}

// position returns the azimuth (north based, clockwise) and the altitude in degrees.
func (p *MeeusSolarProvider) position(ctx context.Context, lat, lon float64, at time.Time) (float64, float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	if at.IsZero() {
		return 0, 0, errors.New("meeus solar position: time is zero")
	}
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return 0, 0, fmt.Errorf("meeus solar position: invalid coordinates (%v, %v)", lat, lon)
	}

	jd := julian.TimeToJD(at.UTC())
	ra, dec := sun.ApparentEquatorial(jd)
	st := sidereal.Apparent(jd)

	// Meeus measures longitude positive westward and azimuth westward from south.
	a, h := coord.EqToHz(ra, dec, unit.AngleFromDeg(lat), unit.AngleFromDeg(-lon), st)

	az := math.Mod(a.Deg()+180, 360)
	if az < 0 {
		az += 360
	}
	if az >= 360 {
		az = 0
	}

	return az, h.Deg(), nil
}
