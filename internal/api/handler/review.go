// Package handler implements the HTTP handlers for the review pipeline's
// public surface: bind request, validate, call the coordinator, map any
// AppError, and write the (possibly reshaped) JSON review.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/coinform/credserve/internal/api"
	"github.com/coinform/credserve/internal/engine"
	"github.com/coinform/credserve/internal/item"
	"github.com/coinform/credserve/internal/registry"
	"github.com/coinform/credserve/pkg/errors"
	"github.com/coinform/credserve/pkg/logger"
)

// Handler binds together the pieces the HTTP surface needs to produce and
// reshape reviews: the batch coordinator and the read-only type registry.
type Handler struct {
	coord    *engine.Coordinator
	registry *registry.Registry
}

// New builds a Handler.
func New(coord *engine.Coordinator, reg *registry.Registry) *Handler {
	return &Handler{coord: coord, registry: reg}
}

func writeAppError(c *gin.Context, err *errors.AppError) {
	c.JSON(err.HTTPStatus(), gin.H{"message": err.Message, "status_code": err.HTTPStatus()})
}

func writeInternalError(c *gin.Context, context string, err error) {
	logger.Error(context, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error(), "status_code": http.StatusInternalServerError})
}

func formatOptionsFromQuery(c *gin.Context) (api.FormatOptions, *errors.AppError) {
	opts := api.DefaultFormatOptions()
	if v := c.Query("reviewFormat"); v != "" {
		opts.ReviewFormat = v
	}
	if v := c.Query("graphFormat"); v != "" {
		opts.GraphFormat = v
	}
	if v := c.Query("basedOn_depth"); v != "" {
		if depth, err := strconv.Atoi(v); err == nil {
			opts.BasedOnDepth = depth
		}
	}
	if err := api.ValidateFormatOptions(opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// worthinessOverrideFromQuery parses the reviewCheckWorthiness query
// parameter into a per-request override of the server's worthiness_review
// setting. Absent means no override (nil); present but unparsable is a
// validation error rather than a silent ignore.
func worthinessOverrideFromQuery(c *gin.Context) (*bool, *errors.AppError) {
	v := c.Query("reviewCheckWorthiness")
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, errors.ErrValidation("query parameter 'reviewCheckWorthiness' must be a boolean")
	}
	return &b, nil
}

// ClaimSearch handles GET /claim/search?claim=... - a single-sentence
// similarity lookup, forwarding to §4.4's batched client with a batch of
// one.
func (h *Handler) ClaimSearch(c *gin.Context) {
	claim := c.Query("claim")
	if claim == "" {
		writeAppError(c, errors.ErrValidation("query parameter 'claim' is required"))
		return
	}
	results := h.coord.FindRelatedSentences(c.Request.Context(), []string{claim})
	c.JSON(http.StatusOK, gin.H{"results": results})
}

type internalSearchRequest struct {
	Claims []string `json:"claims" binding:"required,min=1,dive,required"`
}

// ClaimInternalSearch handles POST /claim/internal-search - the batched
// similarity lookup body {claims: [...]}.
func (h *Handler) ClaimInternalSearch(c *gin.Context) {
	var req internalSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeAppError(c, errors.ErrValidation(err.Error()))
		return
	}
	results := h.coord.FindRelatedSentences(c.Request.Context(), req.Claims)
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// ReviewClaim handles GET /acred/reviewer/credibility/claim, invoking §4.9
// for a single claim sentence. reviewCheckWorthiness, when present,
// overrides the server's worthiness_review setting for this request only.
func (h *Handler) ReviewClaim(c *gin.Context) {
	claim := c.Query("claim")
	if claim == "" {
		writeAppError(c, errors.ErrValidation("query parameter 'claim' is required"))
		return
	}
	opts, ferr := formatOptionsFromQuery(c)
	if ferr != nil {
		writeAppError(c, ferr)
		return
	}

	worthinessOverride, werr := worthinessOverrideFromQuery(c)
	if werr != nil {
		writeAppError(c, werr)
		return
	}

	reviews, err := h.coord.ReviewQuerySentences(c.Request.Context(), []string{claim}, worthinessOverride)
	if err != nil {
		writeInternalError(c, "review claim", err)
		return
	}

	reshaped, rerr := api.Reformat(reviews[0], opts, h.registry)
	if rerr != nil {
		writeInternalError(c, "reshape claim review", rerr)
		return
	}
	c.JSON(http.StatusOK, reshaped)
}

// ReviewWebsite handles GET /acred/reviewer/credibility/website?url=...,
// invoking §4.3 for a single site.
func (h *Handler) ReviewWebsite(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		writeAppError(c, errors.ErrValidation("query parameter 'url' is required"))
		return
	}
	review, err := h.coord.ReviewWebsite(c.Request.Context(), url)
	if err != nil {
		writeInternalError(c, "review website", err)
		return
	}
	c.JSON(http.StatusOK, review)
}

type webpageRequest struct {
	Webpages []item.Item `json:"webpages"`
}

// ReviewWebpage handles GET|POST /acred/reviewer/credibility/webpage,
// invoking §4.10 for each webpage named either by the body's webpages list
// or by repeated url query parameters.
func (h *Handler) ReviewWebpage(c *gin.Context) {
	var webpages []item.Item

	if c.Request.Method == http.MethodPost {
		var req webpageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeAppError(c, errors.ErrValidation(err.Error()))
			return
		}
		webpages = req.Webpages
	}
	for _, u := range c.QueryArray("url") {
		webpages = append(webpages, item.Item{"@type": "Article", "url": u})
	}
	if len(webpages) == 0 {
		writeAppError(c, errors.ErrValidation("request must carry at least one webpage (body 'webpages' or query 'url')"))
		return
	}

	opts, ferr := formatOptionsFromQuery(c)
	if ferr != nil {
		writeAppError(c, ferr)
		return
	}

	reviews := make([]item.Item, len(webpages))
	for i, wp := range webpages {
		rev, err := h.coord.ReviewArticle(c.Request.Context(), wp)
		if err != nil {
			writeInternalError(c, "review webpage", err)
			return
		}
		reviews[i] = rev
	}

	reshaped, rerr := api.ReformatAll(reviews, opts, h.registry)
	if rerr != nil {
		writeInternalError(c, "reshape webpage reviews", rerr)
		return
	}
	c.JSON(http.StatusOK, reshaped)
}

type tweetRequest struct {
	Tweets       []item.Item `json:"tweets" binding:"required,min=1"`
	ReviewFormat string      `json:"reviewFormat"`
	BasedOnDepth *int        `json:"basedOn_depth"`
}

// ReviewTweet handles POST /acred/reviewer/credibility/tweet, invoking
// §4.12 for each tweet in the batch.
func (h *Handler) ReviewTweet(c *gin.Context) {
	var req tweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeAppError(c, errors.ErrValidation(err.Error()))
		return
	}

	opts := api.DefaultFormatOptions()
	if req.ReviewFormat != "" {
		opts.ReviewFormat = req.ReviewFormat
	}
	if req.BasedOnDepth != nil {
		opts.BasedOnDepth = *req.BasedOnDepth
	}
	if ferr := api.ValidateFormatOptions(opts); ferr != nil {
		writeAppError(c, ferr)
		return
	}

	reviews := make([]item.Item, len(req.Tweets))
	for i, tw := range req.Tweets {
		rev, err := h.coord.ReviewTweet(c.Request.Context(), tw)
		if err != nil {
			writeInternalError(c, "review tweet", err)
			return
		}
		reviews[i] = rev
	}

	reshaped, rerr := api.ReformatAll(reviews, opts, h.registry)
	if rerr != nil {
		writeInternalError(c, "reshape tweet reviews", rerr)
		return
	}
	c.JSON(http.StatusOK, reshaped)
}
