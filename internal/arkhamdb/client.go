// Copyright (c) 2026 Cubewright. All rights reserved.
// Author: hale.tran.dev@gmail.com

/*
Package arkhamdb implements the external card data source over the public
ArkhamDB REST API.

It is the only package that knows the upstream JSON shape; everything above
it sees the typed [card.Pack] / [card.Card] view. The upstream may be slow
or down, so every request honors the caller's context deadline — the card
repository decides whether an outage is fatal or falls back to cache.

Endpoints used:

  - GET  <base>/packs/          — pack listing
  - GET  <base>/cards/<pack>    — one pack's cards
*/
package arkhamdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/haletran/cubewright/internal/card"
	"github.com/haletran/cubewright/pkg/slice"
)

// DefaultImageBaseURL hosts the card scan referenced by imagesrc fields.
const DefaultImageBaseURL = "https://arkhamdb.com"

// Client fetches pack and card records from ArkhamDB.
//
// It implements [card.Source].
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates an ArkhamDB client against the given API base URL
// (e.g. "https://arkhamdb.com/api/public").
//
// Request deadlines come from the caller's context; the embedded
// http.Client carries no timeout of its own.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
	}
}

// # Upstream JSON Shapes

// sourcePack mirrors one record of GET /packs/.
type sourcePack struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	CycleCode     string `json:"cycle_code"`
	CyclePosition int    `json:"cycle_position"`
	Position      int    `json:"position"`
}

// sourceCard mirrors one record of GET /cards/<pack>.
type sourceCard struct {
	Code             string       `json:"code"`
	Name             string       `json:"name"`
	PackCode         string       `json:"pack_code"`
	TypeCode         string       `json:"type_code"`
	SubtypeCode      string       `json:"subtype_code"`
	FactionCode      string       `json:"faction_code"`
	IsUnique         bool         `json:"is_unique"`
	Quantity         int          `json:"quantity"`
	DeckRequirements string       `json:"deck_requirements"`
	BondedCards      []bondedCard `json:"bonded_cards"`
	AlternateOf      string       `json:"alternate_of"`
	ImageSrc         string       `json:"imagesrc"`
}

type bondedCard struct {
	Code  string `json:"code"`
	Count int    `json:"count"`
}

// FetchPacks retrieves the full pack listing.
func (client *Client) FetchPacks(ctx context.Context) ([]card.Pack, error) {
	var records []sourcePack
	if err := client.getJSON(ctx, "/packs/", &records); err != nil {
		return nil, err
	}

	packs := slice.Map(records, mapPack)

	client.logger.Debug("arkhamdb_packs_fetched", slog.Int("count", len(packs)))
	return packs, nil
}

// FetchCards retrieves one pack's cards.
func (client *Client) FetchCards(ctx context.Context, packCode string) ([]card.Card, error) {
	var records []sourceCard
	if err := client.getJSON(ctx, "/cards/"+packCode, &records); err != nil {
		return nil, err
	}

	cards := slice.Map(records, mapCard)

	client.logger.Debug("arkhamdb_cards_fetched",
		slog.String("pack_code", packCode),
		slog.Int("count", len(cards)),
	)
	return cards, nil
}

// mapPack converts one upstream pack record into the domain shape.
func mapPack(record sourcePack) card.Pack {
	return card.Pack{
		Code:          record.Code,
		Name:          record.Name,
		CycleCode:     record.CycleCode,
		CyclePosition: record.CyclePosition,
		Position:      record.Position,
	}
}

// mapCard converts one upstream record into the domain shape.
func mapCard(record sourceCard) card.Card {
	mapped := card.Card{
		Code:          record.Code,
		Name:          record.Name,
		PackCode:      record.PackCode,
		Category:      mapCategory(record),
		Faction:       record.FactionCode,
		IsUnique:      record.IsUnique,
		Quantity:      record.Quantity,
		RequiredCards: requiredCodes(record.DeckRequirements),
		IsParallel:    record.AlternateOf != "",
	}

	for _, bonded := range record.BondedCards {
		mapped.BondedCards = append(mapped.BondedCards, bonded.Code)
	}

	if record.ImageSrc != "" {
		mapped.ImageURL = DefaultImageBaseURL + record.ImageSrc
	}

	return mapped
}

// mapCategory assigns the fixed output sheet from the upstream type codes.
// Signature weaknesses (subtype "weakness") travel with their investigator
// through the required-card relationship and draft as player cards.
func mapCategory(record sourceCard) card.Category {
	switch {
	case record.TypeCode == "investigator":
		return card.CategoryInvestigator
	case record.SubtypeCode == "basicweakness":
		return card.CategoryBasicWeakness
	default:
		return card.CategoryPlayerCard
	}
}

// requiredCodes extracts card codes from an upstream deck_requirements
// string, e.g. "size:30, card:01006:01007, card:01009, random:subtype:basicweakness".
// A "card:" clause may list alternatives separated by colons; all of them
// are required companions for cube purposes.
func requiredCodes(requirements string) []string {
	if requirements == "" {
		return nil
	}

	var codes []string
	for _, clause := range strings.Split(requirements, ",") {
		clause = strings.TrimSpace(clause)
		if !strings.HasPrefix(clause, "card:") {
			continue
		}
		for _, code := range strings.Split(strings.TrimPrefix(clause, "card:"), ":") {
			if code != "" {
				codes = append(codes, code)
			}
		}
	}
	return codes
}

// getJSON performs one GET against the API and decodes the response body.
func (client *Client) getJSON(ctx context.Context, path string, target any) error {
	url := client.baseURL + path

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("arkhamdb: build request %s: %w", path, err)
	}
	request.Header.Set("Accept", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("arkhamdb: fetch %s: %w", path, err)
	}
	defer func() { _ = response.Body.Close() }()

	if response.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(response.Body, 4096))
		return fmt.Errorf("arkhamdb: fetch %s: unexpected status %d", path, response.StatusCode)
	}

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		return fmt.Errorf("arkhamdb: decode %s: %w", path, err)
	}

	return nil
}
