package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lborres/rolegate/core"
)

// Requirement: base endpoints are unique and gated event actions carry the
// minimum role the evaluator enforces.
func TestBaseEndpoints(t *testing.T) {
	tests := []struct {
		method      string
		path        string
		wantOpID    string
		wantMinRole core.Role
	}{
		{method: "POST", path: "/sign-in", wantOpID: "signInWithEmailAndPassword", wantMinRole: core.RoleGuest},
		{method: "POST", path: "/sign-out", wantOpID: "signOut", wantMinRole: core.RoleGuest},
		{method: "GET", path: "/session", wantOpID: "getSession", wantMinRole: core.RoleGuest},
		{method: "GET", path: "/plan", wantOpID: "getPlan", wantMinRole: core.RoleGuest},
		{method: "POST", path: "/events", wantOpID: "createEvent", wantMinRole: core.RoleOrganizer},
		{method: "DELETE", path: "/events/:id", wantOpID: "deleteEvent", wantMinRole: core.RoleOrganizer},
		{method: "POST", path: "/events/:id/approve", wantOpID: "approveEvent", wantMinRole: core.RoleAdmin},
		{method: "POST", path: "/events/:id/reject", wantOpID: "rejectEvent", wantMinRole: core.RoleAdmin},
	}

	endpoints := BaseEndpoints()
	byKey := make(map[string]core.Endpoint, len(endpoints))
	for _, ep := range endpoints {
		key := endpointKey(ep)
		require.NotContains(t, byKey, key, "duplicate endpoint %s", key)
		byKey[key] = ep
	}

	for _, tt := range tests {
		t.Run(tt.wantOpID, func(t *testing.T) {
			ep, ok := byKey[tt.method+":"+tt.path]
			require.True(t, ok)
			assert.Equal(t, tt.wantOpID, ep.Metadata.OperationID)
			assert.Equal(t, tt.wantMinRole, ep.Metadata.MinRole)
			assert.NotEmpty(t, ep.Metadata.Description)
		})
	}
}

func TestEndpointRegistry_PreservesOrder(t *testing.T) {
	reg := NewEndpointRegistry()

	got := reg.Endpoints()

	assert.Equal(t, BaseEndpoints(), got)
}

func TestEndpointRegistry_Register(t *testing.T) {
	tests := []struct {
		name      string
		endpoints []core.Endpoint
		wantErr   bool
	}{
		{
			name:      "new endpoint",
			endpoints: []core.Endpoint{{Method: "GET", Path: "/stats"}},
		},
		{
			name:      "conflicts with base",
			endpoints: []core.Endpoint{{Method: "GET", Path: "/stats"}, {Method: "POST", Path: "/sign-in"}},
			wantErr:   true,
		},
		{
			name:      "duplicate within batch",
			endpoints: []core.Endpoint{{Method: "GET", Path: "/stats"}, {Method: "GET", Path: "/stats"}},
			wantErr:   true,
		},
		{
			name:      "same path different method",
			endpoints: []core.Endpoint{{Method: "PUT", Path: "/session"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			reg := NewEndpointRegistry()
			before := len(reg.Endpoints())

			// Act
			err := reg.Register(tt.endpoints)

			// Assert
			if tt.wantErr {
				require.Error(t, err)
				assert.Len(t, reg.Endpoints(), before, "failed batch must not register anything")
				return
			}
			require.NoError(t, err)
			assert.Len(t, reg.Endpoints(), before+len(tt.endpoints))
		})
	}
}
