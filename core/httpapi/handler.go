package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/robofi/sdk-go/core/marketclient"
	"github.com/robofi/sdk-go/core/portfolio"
	"github.com/robofi/sdk-go/core/types"
)

type MarketplaceHandler struct {
	Client marketclient.Marketplace
	Logger *zap.Logger
}

func (h *MarketplaceHandler) Register(r *gin.Engine) {
	group := r.Group("/api/marketplace")
	group.GET("/listings", h.listListings)
	group.GET("/listings/:id", h.getListing)
	group.GET("/filters", h.filterOptions)

	dashboard := r.Group("/api/dashboard")
	dashboard.GET("/portfolio", h.demoPortfolio)
	dashboard.POST("/portfolio", h.portfolio)

	r.GET("/api/presale", h.presale)
}

// listingsQuery reads the marketplace criteria from the query string.
// Missing parameters fall back to their defaults; unknown values are passed
// through and treated as "no constraint" by the engine.
func listingsQuery(c *gin.Context) types.ListListingsInput {
	input := types.DefaultListListingsInput()
	input.Criteria.SearchText = c.Query("search")
	if v := strings.TrimSpace(c.Query("category")); v != "" {
		input.Criteria.Category = types.Category(v)
	}
	if v := strings.TrimSpace(c.Query("price")); v != "" {
		input.Criteria.PriceRange = v
	}
	if v := strings.TrimSpace(c.Query("revenue")); v != "" {
		input.Criteria.RevenueRange = v
	}
	input.Sort = types.ParseSortKey(strings.TrimSpace(c.Query("sort")))
	return input
}

func (h *MarketplaceHandler) listListings(c *gin.Context) {
	input := listingsQuery(c)
	out, err := h.Client.ListListings(c.Request.Context(), input)
	if err != nil {
		h.Logger.Warn("list listings failed", zap.Error(err))
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, newListingViews(out.Listings), map[string]any{
		"total":    out.Total,
		"matched":  len(out.Listings),
		"revision": out.Revision,
		"criteria": input.Criteria,
		"sort":     input.Sort,
		"cache":    out.Cache,
	})
}

func (h *MarketplaceHandler) getListing(c *gin.Context) {
	listing, err := h.Client.GetListing(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, marketclient.ErrListingNotFound) {
			Error(c, http.StatusNotFound, "listing not found", nil)
			return
		}
		h.Logger.Warn("get listing failed", zap.Error(err))
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, newListingView(listing), nil)
}

func (h *MarketplaceHandler) filterOptions(c *gin.Context) {
	Ok(c, h.Client.FilterOptions(), nil)
}

type portfolioRequest struct {
	Holdings []portfolio.Holding `json:"holdings"`
}

func (h *MarketplaceHandler) demoPortfolio(c *gin.Context) {
	h.summarize(c, portfolio.MockHoldings())
}

func (h *MarketplaceHandler) portfolio(c *gin.Context) {
	var req portfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body: "+err.Error(), nil)
		return
	}
	if err := portfolio.Validate(req.Holdings); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	h.summarize(c, req.Holdings)
}

func (h *MarketplaceHandler) summarize(c *gin.Context, holdings []portfolio.Holding) {
	summary, err := h.Client.Portfolio(c.Request.Context(), holdings)
	if err != nil {
		h.Logger.Warn("portfolio summary failed", zap.Error(err))
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, newSummaryView(summary, h.Client.FilterOptions().Price.Unit), nil)
}

func (h *MarketplaceHandler) presale(c *gin.Context) {
	status, err := h.Client.PresaleStatus()
	if err != nil {
		h.Logger.Warn("presale status failed", zap.Error(err))
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, newPresaleView(status), nil)
}
