package toniecloud_test

import (
	"errors"
	"testing"

	"toniecloud/internal/toniecloud"
)

func TestSessionAccessTokenUnauthenticated(t *testing.T) {
	session := toniecloud.NewSession()
	if _, err := session.AccessToken(); !errors.Is(err, toniecloud.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if session.Authenticated() {
		t.Fatal("fresh session must not report authenticated")
	}
}

func TestSessionClientIDStable(t *testing.T) {
	session := toniecloud.NewSession()
	id := session.ClientID()
	if id == "" {
		t.Fatal("expected a generated client id")
	}
	if session.ClientID() != id {
		t.Fatal("client id must be stable for the session lifetime")
	}
	if other := toniecloud.NewSession().ClientID(); other == id {
		t.Fatal("distinct sessions must not share a client id")
	}
}

func TestSessionSelectHouseholdOverrides(t *testing.T) {
	session := toniecloud.NewSession()
	if _, ok := session.SelectedHousehold(); ok {
		t.Fatal("fresh session must have no household selection")
	}
	first := toniecloud.Household{ID: "h1", Name: "Home"}
	second := toniecloud.Household{ID: "h2", Name: "Cabin"}
	session.SelectHousehold(first)
	session.SelectHousehold(second)
	selected, ok := session.SelectedHousehold()
	if !ok || selected.ID != "h2" {
		t.Fatalf("expected explicit selection to override, got %#v ok=%v", selected, ok)
	}
}
