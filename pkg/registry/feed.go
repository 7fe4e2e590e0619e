package registry

import (
	"net/url"
	"time"

	"github.com/travigo/gtfs-extract/pkg/feed/source"
	"github.com/travigo/gtfs-extract/pkg/util"
)

type Feed struct {
	Identifier string   `yaml:"identifier" validate:"required"`
	Provider   Provider `yaml:"provider"`

	Source               string               `yaml:"source" validate:"required"`
	SourceAuthentication SourceAuthentication `yaml:"sourceauthentication"`

	Window      Window `yaml:"window"`
	RouteFilter string `yaml:"routefilter"`
}

type Provider struct {
	Name    string `yaml:"name"`
	Website string `yaml:"website" validate:"omitempty,url"`
}

// SourceAuthentication values are sent with every download of a URL source. Values
// starting with $ are read from the environment.
type SourceAuthentication struct {
	Query  map[string]string `yaml:"query"`
	Header map[string]string `yaml:"header"`
}

// Window is the default extraction window of a feed. Start defaults to the current day.
type Window struct {
	Start  string `yaml:"start" validate:"omitempty,datetime=2006-01-02"`
	End    string `yaml:"end" validate:"omitempty,datetime=2006-01-02,excluded_with=Length"`
	Length string `yaml:"length" validate:"omitempty,iso8601duration"`
}

// OpenSource returns the source of the feed with its authentication applied.
func (f *Feed) OpenSource() (source.Source, error) {
	feedSource, err := source.New(f.Source)
	if err != nil {
		return nil, err
	}

	urlSource, isURL := feedSource.(*source.URL)
	if !isURL {
		return feedSource, nil
	}

	if len(f.SourceAuthentication.Query) > 0 {
		address, err := url.Parse(urlSource.Address)
		if err != nil {
			return nil, err
		}

		query := address.Query()
		for key, value := range f.SourceAuthentication.Query {
			query.Set(key, expandSecret(value))
		}
		address.RawQuery = query.Encode()

		urlSource.Address = address.String()
	}

	if len(f.SourceAuthentication.Header) > 0 {
		urlSource.Headers = map[string]string{}
		for key, value := range f.SourceAuthentication.Header {
			urlSource.Headers[key] = expandSecret(value)
		}
	}

	return urlSource, nil
}

// ResolveWindow applies overrides to the feed's default window. An override end or length
// replaces both defaults.
func (f *Feed) ResolveWindow(start string, end string, length string, now time.Time) (time.Time, time.Time, error) {
	if start == "" {
		start = f.Window.Start
	}
	if start == "" {
		start = now.Format(util.DayLayout)
	}

	if end == "" && length == "" {
		end = f.Window.End
		length = f.Window.Length
	}

	return util.ParseWindow(start, end, length)
}

func expandSecret(value string) string {
	if len(value) > 1 && value[0] == '$' {
		return util.GetEnvironmentVariables()[value[1:]]
	}

	return value
}
