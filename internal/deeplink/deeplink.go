// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

// Package deeplink builds the links a client opens for a chosen restaurant:
// delivery apps, maps directions and the restaurant website.
//
// Links are returned in pairs: an app scheme URL for devices with the app
// installed and a web fallback. The client decides which one to open.
package deeplink

import (
	"net/url"
	"strconv"
	"strings"
)

// App describes a delivery app.
type App struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Scheme      string `json:"scheme"`
	FallbackURL string `json:"fallback_url"`
}

// Delivery app keys
const (
	UberEats = "uber_eats"
	DoorDash = "doordash"
	Grubhub  = "grubhub"
)

var deliveryApps = []App{
	{Key: UberEats, Name: "Uber Eats", Scheme: "ubereats://", FallbackURL: "https://www.ubereats.com/search?q="},
	{Key: DoorDash, Name: "DoorDash", Scheme: "doordash://", FallbackURL: "https://www.doordash.com/search/"},
	{Key: Grubhub, Name: "Grubhub", Scheme: "grubhub://", FallbackURL: "https://www.grubhub.com/search?queryText="},
}

// DeliveryApps returns the supported delivery apps in preference order.
func DeliveryApps() []App {
	return append([]App(nil), deliveryApps...)
}

// DeliveryLink is an app/web link pair for one delivery app.
type DeliveryLink struct {
	App    string `json:"app"`
	Name   string `json:"name"`
	AppURL string `json:"app_url"`
	WebURL string `json:"web_url"`
}

// Delivery builds links for every delivery app, searching for "name address".
// Only Uber Eats accepts a search query in its app scheme; the others open the
// app home screen.
func Delivery(name, address string) []DeliveryLink {
	query := encodeComponent(strings.TrimSpace(name + " " + address))

	links := make([]DeliveryLink, 0, len(deliveryApps))
	for _, app := range deliveryApps {
		appURL := app.Scheme
		if app.Key == UberEats {
			appURL = app.Scheme + "search?q=" + query
		}
		links = append(links, DeliveryLink{
			App:    app.Key,
			Name:   app.Name,
			AppURL: appURL,
			WebURL: app.FallbackURL + query,
		})
	}
	return links
}

// MapsLinks holds directions links per platform.
type MapsLinks struct {
	IOS     string `json:"ios"`
	Android string `json:"android"`
	Web     string `json:"web"`
}

// Maps builds directions links for a labelled coordinate.
func Maps(label string, lat, lng float64) MapsLinks {
	l := encodeComponent(label)
	coords := formatFloat(lat) + "," + formatFloat(lng)
	return MapsLinks{
		IOS:     "maps:0,0?q=" + l + "@" + coords,
		Android: "geo:0,0?q=" + coords + "(" + l + ")",
		Web:     "https://www.google.com/maps/search/?api=1&query=" + coords + "&query_place_id=" + l,
	}
}

// Website normalizes a restaurant website URL, adding https:// when the
// scheme is missing. ok is false for an empty URL.
func Website(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if strings.HasPrefix(raw, "http") {
		return raw, true
	}
	return "https://" + raw, true
}

// encodeComponent escapes s for use inside a URL query value, with spaces
// as %20.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
