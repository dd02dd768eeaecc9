package handlers

import (
	"encoding/xml"
	"net/http"
	"strconv"
	"time"

	"appprove-backend/application/queries"
	querybus "appprove-backend/application/queries/bus"

	"go.uber.org/zap"
)

// SitemapHandler serves /sitemap.xml with one entry per published offer
// plus the static pages.
type SitemapHandler struct {
	queryBus *querybus.QueryBus
	siteURL  string
	logger   *zap.Logger
}

// NewSitemapHandler creates a sitemap handler for the given public site
// URL.
func NewSitemapHandler(queryBus *querybus.QueryBus, siteURL string, logger *zap.Logger) *SitemapHandler {
	return &SitemapHandler{queryBus: queryBus, siteURL: siteURL, logger: logger}
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Serve handles GET /sitemap.xml
func (h *SitemapHandler) Serve(w http.ResponseWriter, r *http.Request) {
	set := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []sitemapURL{
			{Loc: h.siteURL + "/", ChangeFreq: "daily"},
			{Loc: h.siteURL + "/publish", ChangeFreq: "monthly"},
		},
	}

	result, err := h.queryBus.Ask(r.Context(), queries.ListOffersQuery{})
	if err != nil {
		h.logger.Warn("Sitemap offer listing failed", zap.Error(err))
	} else if listing, ok := result.(*queries.ListOffersResult); ok {
		for _, o := range listing.Offers {
			entry := sitemapURL{
				Loc:        h.siteURL + "/offers/" + strconv.FormatInt(o.ID, 10),
				ChangeFreq: "weekly",
			}
			if !o.UpdatedAt.IsZero() {
				entry.LastMod = o.UpdatedAt.Format(time.RFC3339)
			}
			set.URLs = append(set.URLs, entry)
		}
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(xml.Header))
	if err := xml.NewEncoder(w).Encode(set); err != nil {
		h.logger.Error("Failed to encode sitemap", zap.Error(err))
	}
}
