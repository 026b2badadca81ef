package espn

// Domain selects one of the two ESPN API surfaces.
type Domain int

const (
	// DomainSite is site.api.espn.com (scoreboards, teams, summaries)
	DomainSite Domain = iota
	// DomainCore is sports.core.api.espn.com (leagues, athletes)
	DomainCore
)

// String returns the string representation of the domain
func (d Domain) String() string {
	if d == DomainCore {
		return "core"
	}
	return "site"
}

// Response wraps one completed HTTP exchange. URL is the URL the client
// built, without query parameters; FinalURL is where the last redirect
// landed, query included.
type Response struct {
	Data       map[string]any
	StatusCode int
	URL        string
	FinalURL   string
}

// IsSuccess reports whether the status code is 2xx
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
