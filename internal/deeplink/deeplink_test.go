// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package deeplink

import "testing"

func TestDelivery(t *testing.T) {
	t.Parallel()

	links := Delivery("Joe's Pizza", "7 Carmine St")
	if len(links) != 3 {
		t.Fatalf("Expected 3 delivery links, got %d", len(links))
	}

	const query = "Joe%27s%20Pizza%207%20Carmine%20St"
	want := []DeliveryLink{
		{App: UberEats, Name: "Uber Eats", AppURL: "ubereats://search?q=" + query, WebURL: "https://www.ubereats.com/search?q=" + query},
		{App: DoorDash, Name: "DoorDash", AppURL: "doordash://", WebURL: "https://www.doordash.com/search/" + query},
		{App: Grubhub, Name: "Grubhub", AppURL: "grubhub://", WebURL: "https://www.grubhub.com/search?queryText=" + query},
	}
	for i := range want {
		if links[i] != want[i] {
			t.Errorf("links[%d] = %+v, want %+v", i, links[i], want[i])
		}
	}
}

func TestDelivery_EscapesQuerySeparators(t *testing.T) {
	t.Parallel()

	links := Delivery("A&W", "1 Main St #2")
	if got := links[0].WebURL; got != "https://www.ubereats.com/search?q=A%26W%201%20Main%20St%20%232" {
		t.Errorf("WebURL = %q", got)
	}
}

func TestMaps(t *testing.T) {
	t.Parallel()

	got := Maps("Pho 99", 40.7128, -74.006)
	want := MapsLinks{
		IOS:     "maps:0,0?q=Pho%2099@40.7128,-74.006",
		Android: "geo:0,0?q=40.7128,-74.006(Pho%2099)",
		Web:     "https://www.google.com/maps/search/?api=1&query=40.7128,-74.006&query_place_id=Pho%2099",
	}
	if got != want {
		t.Errorf("Maps() = %+v, want %+v", got, want)
	}
}

func TestWebsite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{in: "", wantOK: false},
		{in: "   ", wantOK: false},
		{in: "example.com", want: "https://example.com", wantOK: true},
		{in: "http://example.com", want: "http://example.com", wantOK: true},
		{in: "https://example.com/menu", want: "https://example.com/menu", wantOK: true},
	}

	for _, tt := range tests {
		got, ok := Website(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("Website(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestDeliveryApps_ReturnsCopy(t *testing.T) {
	t.Parallel()

	apps := DeliveryApps()
	apps[0].Name = "changed"
	if DeliveryApps()[0].Name != "Uber Eats" {
		t.Error("DeliveryApps exposed internal slice")
	}
}
