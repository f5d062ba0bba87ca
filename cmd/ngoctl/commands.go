package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog/log"

	"ngo-directory-service/internal/adapters/location"
	"ngo-directory-service/internal/domain"
	"ngo-directory-service/internal/ports"
	"ngo-directory-service/internal/services"
)

// positionEnv holds the device position for processes without a GPS.
const positionEnv = "NGO_POSITION"

type nearbyCommand struct {
	app *app

	Lat   string `long:"lat"   description:"Reference latitude (defaults to $NGO_POSITION, then the default region)"`
	Lng   string `long:"lng"   description:"Reference longitude"`
	Limit int    `long:"limit" description:"Show at most this many NGOs (0 shows all)" default:"0"`
}

func (c *nearbyCommand) sensor() (ports.LocationSensor, error) {
	if c.Lat == "" && c.Lng == "" {
		return location.Chain{location.Env{Key: positionEnv}}, nil
	}
	pos, err := domain.ParseCoordinate(c.Lat + "," + c.Lng)
	if err != nil {
		return nil, err
	}
	return location.Fixed{Position: pos}, nil
}

func (c *nearbyCommand) Execute(args []string) error {
	ctx := c.app.ctx

	fallback, err := c.app.opts.Region.Coordinate()
	if err != nil {
		return err
	}
	sensor, err := c.sensor()
	if err != nil {
		return err
	}

	ref, err := services.ResolveReference(ctx, sensor, fallback)
	if err != nil {
		return err
	}
	if ref.Fallback {
		fmt.Fprintf(c.app.out, "Location access not granted; showing NGOs near the default region (%s).\n", ref.Coordinate)
	}

	reg, err := c.app.registry()
	if err != nil {
		return err
	}

	view := services.NewNearbyView(reg)
	defer view.Close()

	if err := view.SetReference(ref.Coordinate); err != nil {
		return err
	}
	if err := view.Refresh(ctx); err != nil {
		return err
	}

	ranked, err := view.Ranked()
	if err != nil {
		return err
	}
	if len(ranked) == 0 {
		fmt.Fprintln(c.app.out, "No NGOs registered yet.")
		return nil
	}
	if c.Limit > 0 && len(ranked) > c.Limit {
		ranked = ranked[:c.Limit]
	}

	tw := tabwriter.NewWriter(c.app.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDISTANCE\tNEEDS")
	for _, n := range ranked {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", n.ID, n.Name, n.DistanceLabel(), n.Needs)
	}
	return tw.Flush()
}

type showCommand struct {
	app *app

	Args struct {
		ID string `positional-arg-name:"id" required:"yes"`
	} `positional-args:"yes"`
}

func (c *showCommand) Execute(args []string) error {
	reg, err := c.app.registry()
	if err != nil {
		return err
	}

	n, err := reg.GetNgo(c.app.ctx, c.Args.ID)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(c.app.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\t%s\n", n.ID)
	fmt.Fprintf(tw, "Name\t%s\n", n.Name)
	fmt.Fprintf(tw, "Address\t%s\n", orDash(n.Address))
	fmt.Fprintf(tw, "Objective\t%s\n", orDash(n.Objective))
	fmt.Fprintf(tw, "Needs\t%s\n", orDash(n.Needs))
	fmt.Fprintf(tw, "Location\t%s\n", n.Location)
	return tw.Flush()
}

type resolveCommand struct {
	app *app

	Lat float64 `long:"lat" required:"yes" description:"Latitude"`
	Lng float64 `long:"lng" required:"yes" description:"Longitude"`
}

func (c *resolveCommand) Execute(args []string) error {
	pos, err := domain.NewCoordinate(c.Lat, c.Lng)
	if err != nil {
		return err
	}

	geocoder, release, err := c.app.geocoder()
	if err != nil {
		return err
	}
	defer release()

	addr, err := geocoder.ReverseGeocode(c.app.ctx, pos)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.app.out, addr)
	return nil
}

type registerCommand struct {
	app *app

	Name      string `long:"name"      required:"yes" description:"NGO name"`
	Objective string `long:"objective"                description:"What the NGO does"`
	Needs     string `long:"needs"                    description:"What the NGO needs"`
	Address   string `long:"address"                  description:"Street address (replaced when --pick-* resolves)"`
	Lat       string `long:"lat"                      description:"Latitude as typed; wins over --pick-lat"`
	Lng       string `long:"lng"                      description:"Longitude as typed; wins over --pick-lng"`
	PickLat   string `long:"pick-lat"                 description:"Latitude picked on the map; its address is looked up"`
	PickLng   string `long:"pick-lng"                 description:"Longitude picked on the map"`
}

func (c *registerCommand) Execute(args []string) error {
	ctx := c.app.ctx

	reg, err := c.app.registry()
	if err != nil {
		return err
	}

	geocoder, release, err := c.app.geocoder()
	if err != nil {
		return err
	}
	defer release()

	p := services.NewRegistrationPipeline(geocoder, reg)
	defer p.Close()

	for _, set := range []func() error{
		func() error { return p.SetName(c.Name) },
		func() error { return p.SetObjective(c.Objective) },
		func() error { return p.SetNeeds(c.Needs) },
		func() error { return p.SetAddress(c.Address) },
	} {
		if err := set(); err != nil {
			return err
		}
	}

	if c.PickLat != "" || c.PickLng != "" {
		pick, err := domain.ParseCoordinate(c.PickLat + "," + c.PickLng)
		if err != nil {
			return err
		}

		addr, err := p.SelectLocation(ctx, pick)
		switch {
		case err == nil:
			fmt.Fprintf(c.app.out, "Address: %s\n", addr)
		case errors.Is(err, domain.ErrNoAddressFound), errors.Is(err, domain.ErrGeocodingUnavailable):
			fmt.Fprintf(c.app.out, "%s; keeping the typed address.\n", err)
		default:
			return err
		}
	}

	if c.Lat != "" || c.Lng != "" {
		if err := p.SetCoordinatesText(c.Lat, c.Lng); err != nil {
			return err
		}
	}

	log.Debug().Stringer("state", p.State()).Msg("submitting registration")

	rec, err := p.Submit(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.app.out, "Registered %q with id %s at %s.\n", rec.Name, rec.ID, formatCoordinate(rec.Location))
	return nil
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func formatCoordinate(c domain.Coordinate) string {
	return strconv.FormatFloat(c.Lat, 'f', 5, 64) + ", " + strconv.FormatFloat(c.Lng, 'f', 5, 64)
}
