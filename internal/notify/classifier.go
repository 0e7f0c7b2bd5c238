package notify

import (
	"regexp"
	"strconv"
	"strings"
)

// RouteKind tags the navigation decision for a clicked notification
type RouteKind int

const (
	// RouteNone means no navigation is performed (empty redirect URL)
	RouteNone RouteKind = iota
	// RouteExternal opens the redirect URL in a new browsing context
	RouteExternal
	// RouteInvitation navigates to the invitation detail screen
	RouteInvitation
	// RoutePayment navigates to the supported-partner detail screen
	RoutePayment
	// RouteProjectDetail navigates to a project detail path
	RouteProjectDetail
)

// Client route targets for the two recruitment flows
const (
	invitationDetailPath = "/projects/invited"
	supportedPartnerPath = "/partners/supported"
)

// notification type tokens recognized by the classifier
const (
	inviteTypeToken = "INVITE"
	proposalTerm    = "제안"
	supportTerm     = "지원"
)

var (
	invitationURLPattern = regexp.MustCompile(`/(?:projects/)?invitations/(\d+)$`)
	trailingIDPattern    = regexp.MustCompile(`(\d+)$`)
	projectDetailPattern = regexp.MustCompile(`^/projects/\d+$`)
)

// Route is the outcome of classifying one notification. ID carries the
// invitation or application id extracted from the redirect URL; HasID is
// false when the URL had no numeric trailing segment, and callers must treat
// the id as absent rather than zero.
type Route struct {
	Kind  RouteKind
	Path  string
	URL   string
	ID    int64
	HasID bool
}

// Classify decides the navigation target for a notification from its type
// and redirect URL. It is pure: no network calls, no side effects.
func Classify(typ, redirectURL string) Route {
	if redirectURL == "" {
		return Route{Kind: RouteNone}
	}

	if strings.HasPrefix(redirectURL, "http") {
		return Route{Kind: RouteExternal, URL: redirectURL}
	}

	if isInvitationType(typ) {
		id, ok := extractInvitationID(redirectURL)
		return Route{Kind: RouteInvitation, Path: invitationDetailPath, ID: id, HasID: ok}
	}

	if isSupportType(typ) {
		id, ok := extractInvitationID(redirectURL)
		return Route{Kind: RoutePayment, Path: supportedPartnerPath, ID: id, HasID: ok}
	}

	return Route{Kind: RouteProjectDetail, Path: canonicalProjectPath(redirectURL)}
}

// isInvitationType recognizes invitation/proposal notifications
func isInvitationType(typ string) bool {
	upper := strings.ToUpper(typ)
	return strings.Contains(upper, "INVITATION") ||
		upper == inviteTypeToken ||
		strings.Contains(typ, proposalTerm)
}

// isSupportType recognizes support/application-matching notifications
func isSupportType(typ string) bool {
	return strings.Contains(strings.ToUpper(typ), "SUPPORT") ||
		strings.Contains(typ, supportTerm)
}

// extractInvitationID pulls the numeric id from the trailing segment of an
// /invitations/{id} or /projects/invitations/{id} path
func extractInvitationID(redirectURL string) (int64, bool) {
	match := invitationURLPattern.FindStringSubmatch(redirectURL)
	if match == nil {
		return 0, false
	}
	id, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// canonicalProjectPath rewrites a redirect URL into the canonical project
// detail path when a trailing numeric id can be found, falling back to the
// raw URL otherwise
func canonicalProjectPath(redirectURL string) string {
	if projectDetailPattern.MatchString(redirectURL) {
		return redirectURL
	}
	if match := trailingIDPattern.FindString(redirectURL); match != "" {
		return "/projects/" + match
	}
	return redirectURL
}
