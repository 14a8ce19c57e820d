package main

import (
	"context"
	"fmt"

	mapshare "github.com/emrgen/mapshare"
	"github.com/emrgen/mapshare/internal/cloud"
	"github.com/emrgen/mapshare/internal/config"
	"github.com/emrgen/mapshare/internal/model"
	"github.com/sirupsen/logrus"
)

// exercises the full invitation path against the in-memory cloud fake:
// host a shared document, ingest the invitation url, pin a place.
func main() {
	ctx := context.Background()

	client, err := mapshare.NewClient(config.LoadConfig(), nil)
	if err != nil {
		logrus.Fatal(err)
	}
	defer client.Close()

	fake, ok := client.Cloud.(*cloud.Memory)
	if !ok {
		logrus.Fatal("debug harness needs the in-memory cloud")
	}

	doc := &model.Document{ID: "trip-2026", Name: "Summer Trip"}
	fake.Host("https://share.example.com/trip-2026", cloud.Identity{
		ID:        "owner-1",
		GivenName: "Alice",
	}, doc)

	docID, err := client.Resolver.Ingest(ctx, cloud.ShareReference{
		URL: "https://share.example.com/trip-2026",
	})
	if err != nil {
		logrus.Fatal(err)
	}
	fmt.Printf("resolved document: %s\n", docID)

	place, err := client.Documents.AddPlace(ctx, docID, &model.Place{
		Name:      "Golden Gate Bridge",
		Latitude:  37.8199,
		Longitude: -122.4783,
	}, "owner-1")
	if err != nil {
		logrus.Fatal(err)
	}
	fmt.Printf("pinned place: %s\n", place.ID)

	state, err := client.Reactions.Toggle(ctx, place.ID, "Alice", model.ReactionThumbsUp)
	if err != nil {
		logrus.Fatal(err)
	}
	fmt.Printf("reaction state: %s\n", state)
}
