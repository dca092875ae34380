package services

import (
	"fmt"

	"github.com/lborres/rolegate/core"
)

// BaseEndpoints returns framework-agnostic endpoint definitions for the
// session, plan and event routes. Adapters supply the handlers.
func BaseEndpoints() []core.Endpoint {
	return []core.Endpoint{
		{
			Path:   "/sign-in",
			Method: "POST",
			Metadata: core.EndpointMetadata{
				OperationID: "signInWithEmailAndPassword",
				Description: "Sign in a user using email and password",
			},
		},
		{
			Path:   "/quick-login/:account",
			Method: "POST",
			Metadata: core.EndpointMetadata{
				OperationID: "quickLogin",
				Description: "Sign in as one of the demo accounts",
			},
		},
		{
			Path:   "/sign-out",
			Method: "POST",
			Metadata: core.EndpointMetadata{
				OperationID: "signOut",
				Description: "Sign out the current user and clear the session",
			},
		},
		{
			Path:   "/session",
			Method: "GET",
			Metadata: core.EndpointMetadata{
				OperationID: "getSession",
				Description: "Get the current user's session data",
			},
		},
		{
			Path:   "/plan",
			Method: "GET",
			Metadata: core.EndpointMetadata{
				OperationID: "getPlan",
				Description: "Get the visibility plan for the current session and event board",
			},
		},
		{
			Path:   "/guard/:role",
			Method: "GET",
			Metadata: core.EndpointMetadata{
				OperationID: "protectPage",
				Description: "Check whether the current session may open a page requiring a role",
			},
		},
		{
			Path:   "/events",
			Method: "GET",
			Metadata: core.EndpointMetadata{
				OperationID: "listEvents",
				Description: "List the event board",
			},
		},
		{
			Path:   "/events",
			Method: "POST",
			Metadata: core.EndpointMetadata{
				OperationID: "createEvent",
				Description: "Submit a new event for approval",
				MinRole:     core.RoleOrganizer,
			},
		},
		{
			Path:   "/events/:id/edit",
			Method: "POST",
			Metadata: core.EndpointMetadata{
				OperationID: "editEvent",
				Description: "Open the editor for an owned event",
				MinRole:     core.RoleOrganizer,
			},
		},
		{
			Path:   "/events/:id",
			Method: "DELETE",
			Metadata: core.EndpointMetadata{
				OperationID: "deleteEvent",
				Description: "Delete an owned event",
				MinRole:     core.RoleOrganizer,
			},
		},
		{
			Path:   "/events/:id/approve",
			Method: "POST",
			Metadata: core.EndpointMetadata{
				OperationID: "approveEvent",
				Description: "Publish a pending event",
				MinRole:     core.RoleAdmin,
			},
		},
		{
			Path:   "/events/:id/reject",
			Method: "POST",
			Metadata: core.EndpointMetadata{
				OperationID: "rejectEvent",
				Description: "Reject a pending event with a reason",
				MinRole:     core.RoleAdmin,
			},
		},
		{
			Path:   "/events/:id/feature",
			Method: "POST",
			Metadata: core.EndpointMetadata{
				OperationID: "featureEvent",
				Description: "Feature an event on the home page",
				MinRole:     core.RoleAdmin,
			},
		},
	}
}

// EndpointRegistry holds endpoints keyed by METHOD:PATH and rejects
// duplicates. Registration order is preserved.
type EndpointRegistry struct {
	endpoints map[string]*core.Endpoint
	order     []string
}

// NewEndpointRegistry creates a registry with all base endpoints
// pre-registered.
func NewEndpointRegistry() *EndpointRegistry {
	reg := &EndpointRegistry{
		endpoints: make(map[string]*core.Endpoint),
	}
	for _, ep := range BaseEndpoints() {
		// base endpoints are unique
		_ = reg.register(ep)
	}
	return reg
}

func endpointKey(ep core.Endpoint) string {
	return fmt.Sprintf("%s:%s", ep.Method, ep.Path)
}

func (r *EndpointRegistry) register(ep core.Endpoint) error {
	key := endpointKey(ep)
	if _, exists := r.endpoints[key]; exists {
		return fmt.Errorf("endpoint conflict: %s %s already registered", ep.Method, ep.Path)
	}
	r.endpoints[key] = &ep
	r.order = append(r.order, key)
	return nil
}

// Register adds extra endpoints. Either all of them are registered or, on a
// conflict with existing endpoints or within the batch, none are.
func (r *EndpointRegistry) Register(endpoints []core.Endpoint) error {
	seen := make(map[string]bool, len(endpoints))
	for _, ep := range endpoints {
		key := endpointKey(ep)
		if _, exists := r.endpoints[key]; exists {
			return fmt.Errorf("endpoint conflict: %s %s already registered", ep.Method, ep.Path)
		}
		if seen[key] {
			return fmt.Errorf("duplicate endpoint: %s %s", ep.Method, ep.Path)
		}
		seen[key] = true
	}

	for _, ep := range endpoints {
		_ = r.register(ep)
	}
	return nil
}

// Endpoints returns every registered endpoint in registration order.
func (r *EndpointRegistry) Endpoints() []core.Endpoint {
	result := make([]core.Endpoint, 0, len(r.order))
	for _, key := range r.order {
		result = append(result, *r.endpoints[key])
	}
	return result
}
