package action

import (
	"httprule/internal/core/request"
	"httprule/internal/pkg/errs"
)

type refererBelongsTo struct {
	domain string
}

// RefererBelongsTo requires the referer header's host to equal domain.
func RefererBelongsTo(domain string) Action {
	return &refererBelongsTo{domain: domain}
}

func (a *refererBelongsTo) Name() string { return NameRefererBelongsTo }
func (a *refererBelongsTo) Kind() Kind   { return Assertor }

func (a *refererBelongsTo) Apply(req *request.Request) error {
	if !req.RefererBelongsTo(a.domain) {
		return errs.Violationf("request referer does not belong to: %s", a.domain)
	}
	return nil
}

func (a *refererBelongsTo) String() string { return NameRefererBelongsTo + "(" + a.domain + ")" }

type allowDomains struct {
	domains []string
}

// AllowDomains requires the request host to be one of domains.
func AllowDomains(domains []string) Action {
	return &allowDomains{domains: domains}
}

func (a *allowDomains) Name() string { return NameAllowDomains }
func (a *allowDomains) Kind() Kind   { return Assertor }

func (a *allowDomains) Apply(req *request.Request) error {
	if !req.AllowDomains(a.domains) {
		return errs.Violationf("request domain %s is not allowed, should be one of %s", req.Domain(), formatList(a.domains))
	}
	return nil
}

func (a *allowDomains) String() string { return NameAllowDomains + "(" + formatList(a.domains) + ")" }
