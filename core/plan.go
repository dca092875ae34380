package core

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Region names a part of the page the plan controls.
type Region string

const (
	RegionLogin         Region = "login"         // login affordance in the navigation
	RegionIdentity      Region = "identity"      // avatar, name and account menu
	RegionCreate        Region = "create"        // floating button and create-event links
	RegionCTABanner     Region = "cta-banner"    // "host your event" banner
	RegionWishlist      Region = "wishlist"
	RegionRSVP          Region = "rsvp"
	RegionComments      Region = "comments"
	RegionNotifications Region = "notifications" // pending-review badge
)

// pageRegions is the order in which Apply visits page-level regions.
var pageRegions = []Region{
	RegionLogin,
	RegionIdentity,
	RegionCreate,
	RegionCTABanner,
	RegionWishlist,
	RegionRSVP,
	RegionComments,
	RegionNotifications,
}

// Control is a per-resource action affordance.
type Control string

const (
	ControlEdit     Control = "edit"
	ControlDelete   Control = "delete"
	ControlApproval Control = "approval"
)

// ResourceRegion names the region of one control on one resource card.
func ResourceRegion(resourceID string, c Control) Region {
	return Region("event/" + resourceID + "/" + string(c))
}

// Identity is the content of the identity region.
type Identity struct {
	Name     string     `json:"name"`
	Initial  string     `json:"initial"`
	RoleName string     `json:"roleName"`
	RoleIcon string     `json:"roleIcon"`
	Menu     []MenuItem `json:"menu"`
}

type MenuItem struct {
	Label   string `json:"label"`
	Href    string `json:"href"`
	Section string `json:"section"`
}

type ResourcePlan struct {
	ResourceID   string `json:"resourceId"`
	ShowEdit     bool   `json:"showEdit"`
	ShowDelete   bool   `json:"showDelete"`
	ShowApproval bool   `json:"showApproval"`
}

// Plan is a presentation-independent description of what the page shows for
// a given session. It is recomputed after every login or logout; nothing
// updates it in place.
type Plan struct {
	Anonymous     bool            `json:"anonymous"`
	Visible       map[Region]bool `json:"visible"`
	Identity      *Identity       `json:"identity,omitempty"`
	Resources     []ResourcePlan  `json:"resources"`
	PendingCount  int             `json:"pendingCount"`
	LoginRequired bool            `json:"loginRequired"`
	LoginURL      string          `json:"loginUrl,omitempty"`
}

func (p Plan) IsVisible(r Region) bool {
	return p.Visible[r]
}

// Resource returns the plan entry for id.
func (p Plan) Resource(id string) (ResourcePlan, bool) {
	for _, rp := range p.Resources {
		if rp.ResourceID == id {
			return rp, true
		}
	}
	return ResourcePlan{}, false
}

// Plan computes the visibility plan for s over resources. An expired session
// yields the same plan as no session.
func (e Evaluator) Plan(s *Session, resources []Resource) Plan {
	if !e.Active(s) {
		return guestPlan(resources)
	}

	isAdmin := s.Role == RoleAdmin
	canCreate := e.CanCreateEvent(s)

	p := Plan{
		Visible: map[Region]bool{
			RegionLogin:     false,
			RegionIdentity:  true,
			RegionCreate:    canCreate,
			RegionCTABanner: canCreate,
			RegionWishlist:  true,
			RegionRSVP:      true,
			RegionComments:  true,
		},
		Identity:  identityFor(e, s),
		Resources: make([]ResourcePlan, 0, len(resources)),
	}

	for _, r := range resources {
		modify := e.CanModify(s, r.OwnerID)
		approve := isAdmin && r.Pending()
		p.Resources = append(p.Resources, ResourcePlan{
			ResourceID:   r.ID,
			ShowEdit:     modify,
			ShowDelete:   modify,
			ShowApproval: approve,
		})
		if approve {
			p.PendingCount++
		}
	}
	p.Visible[RegionNotifications] = isAdmin && p.PendingCount > 0

	return p
}

func guestPlan(resources []Resource) Plan {
	p := Plan{
		Anonymous: true,
		Visible: map[Region]bool{
			RegionLogin:         true,
			RegionIdentity:      false,
			RegionCreate:        false,
			RegionCTABanner:     true,
			RegionWishlist:      false,
			RegionRSVP:          false,
			RegionComments:      false,
			RegionNotifications: false,
		},
		Resources:     make([]ResourcePlan, 0, len(resources)),
		LoginRequired: true,
		LoginURL:      PageLogin,
	}
	for _, r := range resources {
		p.Resources = append(p.Resources, ResourcePlan{ResourceID: r.ID})
	}
	return p
}

func identityFor(e Evaluator, s *Session) *Identity {
	menu := []MenuItem{
		{Label: "Profile", Href: "#profile", Section: "account"},
		{Label: "My Tickets", Href: "#tickets", Section: "account"},
	}
	if e.CanCreateEvent(s) {
		menu = append(menu,
			MenuItem{Label: "My Events", Href: "#my-events", Section: "organizer"},
			MenuItem{Label: "Create Event", Href: PageCreate, Section: "organizer"},
		)
	}
	if e.CanViewAnalytics(s) {
		menu = append(menu, MenuItem{Label: "Analytics", Href: "#analytics", Section: "organizer"})
	}
	if e.CanManageUsers(s) {
		menu = append(menu,
			MenuItem{Label: "Admin Panel", Href: "#admin", Section: "admin"},
			MenuItem{Label: "Manage Users", Href: "#users", Section: "admin"},
			MenuItem{Label: "Approvals", Href: "#approvals", Section: "admin"},
		)
	}
	menu = append(menu,
		MenuItem{Label: "Settings", Href: "#settings", Section: "footer"},
		MenuItem{Label: "Logout", Href: "#logout", Section: "footer"},
	)

	return &Identity{
		Name:     s.Name,
		Initial:  initial(s.Name),
		RoleName: s.Role.String(),
		RoleIcon: s.Role.Icon(),
		Menu:     menu,
	}
}

func initial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "?"
	}
	r, _ := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r))
}

// BuildPlan computes a plan against the wall clock.
func BuildPlan(s *Session, resources []Resource) Plan {
	return wallClock.Plan(s, resources)
}

// Apply pushes p to a presenter. Page regions are visited in a fixed order,
// then each resource's controls in resource order.
func Apply(p Plan, out Presenter) {
	for _, r := range pageRegions {
		out.SetVisible(r, p.Visible[r])
	}
	if p.Identity != nil {
		out.SetContent(RegionIdentity, *p.Identity)
	}
	if p.Visible[RegionNotifications] {
		out.SetContent(RegionNotifications, p.PendingCount)
	}
	for _, rp := range p.Resources {
		out.SetVisible(ResourceRegion(rp.ResourceID, ControlEdit), rp.ShowEdit)
		out.SetVisible(ResourceRegion(rp.ResourceID, ControlDelete), rp.ShowDelete)
		out.SetVisible(ResourceRegion(rp.ResourceID, ControlApproval), rp.ShowApproval)
	}
}
