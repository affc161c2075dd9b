// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package guard decides client-side redirects for the single-page client.
//
// The decision is advisory. It only looks at whether a login marker exists in
// browser storage; the server enforces authorization on every protected route.
package guard

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Policy describes which pages require or forbid a logged-in client.
type Policy struct {
	LoginPath   string   `json:"loginPath"`
	LandingPath string   `json:"landingPath"`
	PublicOnly  []string `json:"publicOnly"`
	MarkerKey   string   `json:"markerKey"`
}

// DefaultPolicy matches the web client: signup at "/", login at "/login",
// the dashboard as landing page and "userData" as the storage marker.
func DefaultPolicy() Policy {
	return Policy{
		LoginPath:   "/login",
		LandingPath: "/dashboard",
		PublicOnly:  []string{"/", "/login"},
		MarkerKey:   "userData",
	}
}

// Decision is the outcome of evaluating a navigation.
type Decision struct {
	Redirect string
}

// Allowed reports whether the page may render as requested.
func (d Decision) Allowed() bool {
	return d.Redirect == ""
}

// Evaluate decides where a client on path should go.
func (p Policy) Evaluate(path string, hasMarker bool) Decision {
	path = normalize(path)
	switch {
	case hasMarker && slices.Contains(p.PublicOnly, path):
		return Decision{Redirect: p.LandingPath}
	case !hasMarker && path == p.LandingPath:
		return Decision{Redirect: p.LoginPath}
	default:
		return Decision{}
	}
}

func normalize(path string) string {
	if path == "" {
		return "/"
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			return "/"
		}
	}
	return path
}

// Script renders a browser script that applies the policy on page load.
func (p Policy) Script() ([]byte, error) {
	policy, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode guard policy: %w", err)
	}
	return fmt.Appendf(nil, scriptTemplate, policy), nil
}

const scriptTemplate = `(function () {
  "use strict";
  var policy = %s;

  function normalize(path) {
    if (!path) return "/";
    if (path.length > 1) path = path.replace(/\/+$/, "") || "/";
    return path;
  }

  function evaluate(path, hasMarker) {
    path = normalize(path);
    if (hasMarker && policy.publicOnly.indexOf(path) !== -1) return policy.landingPath;
    if (!hasMarker && path === policy.landingPath) return policy.loginPath;
    return "";
  }

  var hasMarker = false;
  try {
    hasMarker = window.localStorage.getItem(policy.markerKey) !== null;
  } catch (e) {}

  var target = evaluate(window.location.pathname, hasMarker);
  if (target) window.location.replace(target);

  window.authGuard = { policy: policy, evaluate: evaluate };
})();
`
