// Package api wires the HTTP front door onto the review pipeline: request
// binding and validation, graph-format reshaping, and error mapping.
package api

import (
	stderrors "errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/coinform/credserve/internal/identity"
	"github.com/coinform/credserve/internal/item"
	"github.com/coinform/credserve/internal/registry"
	"github.com/coinform/credserve/pkg/errors"
)

// ValidReviewFormats are the review output shapes §6 accepts. cred_assessment
// is the deprecated pre-refactoring dict shape: this service never produces
// it, so requesting it is a no-op that returns the schema.org review as-is.
var ValidReviewFormats = []string{"schema.org", "cred_assessment"}

// ValidGraphFormats are the nested-tree reshapings a schema.org review can
// be returned as.
var ValidGraphFormats = []string{"nestedTree", "nodesWithRefs", "nodesAndLinks"}

var formatValidator = validator.New()

// FormatOptions carries the query-string/body options §6 recognises for
// reshaping a review tree before it is sent back to the caller.
type FormatOptions struct {
	ReviewFormat string `validate:"omitempty,oneof=schema.org cred_assessment"`
	GraphFormat  string `validate:"omitempty,oneof=nestedTree nodesWithRefs nodesAndLinks"`
	BasedOnDepth int    `validate:"min=0"`
}

// DefaultFormatOptions mirrors the source's own config defaults:
// acred_review_format defaults to schema.org, acred_graph_format to
// nestedTree, basedOn_depth to 1 (only meaningful for nestedTree).
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{
		ReviewFormat: "schema.org",
		GraphFormat:  "nestedTree",
		BasedOnDepth: 1,
	}
}

// ValidateFormatOptions rejects unrecognised reviewFormat/graphFormat
// values with a 400 naming the allowed values, per §7's "invalid review
// format configuration" error kind.
func ValidateFormatOptions(opts FormatOptions) *errors.AppError {
	err := formatValidator.Struct(opts)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.ErrValidation(err.Error())
	}
	for _, fe := range fieldErrs {
		switch fe.Field() {
		case "ReviewFormat":
			return errors.ErrInvalidReviewFormat(opts.ReviewFormat, ValidReviewFormats)
		case "GraphFormat":
			return errors.ErrInvalidGraphFormat(opts.GraphFormat, ValidGraphFormats)
		default:
			return errors.ErrValidation(strings.ToLower(fe.Field()) + " " + fe.Tag())
		}
	}
	return nil
}

// Reformat reshapes review according to opts, mirroring format_graph's
// dispatch: cred_assessment is a no-op, nestedTree trims isBasedOn at
// BasedOnDepth, nodesWithRefs flattens to an identifier-indexed map, and
// nodesAndLinks decomposes into a node/link graph.
func Reformat(review item.Item, opts FormatOptions, r *registry.Registry) (interface{}, error) {
	if opts.ReviewFormat == "cred_assessment" {
		return review, nil
	}

	switch opts.GraphFormat {
	case "", "nestedTree":
		if opts.BasedOnDepth <= 0 {
			return review, nil
		}
		trimmed, err := identity.TrimTree(identity.Item(review), "isBasedOn", opts.BasedOnDepth)
		if err != nil {
			return nil, err
		}
		return trimmed, nil
	case "nodesWithRefs":
		return identity.NormaliseNestedItem(identity.Item(review), r, nil)
	case "nodesAndLinks":
		compositeRels := map[string]bool{"reviewRating": true}
		return identity.NestedItemAsGraph(identity.Item(review), r, compositeRels, true)
	default:
		return review, nil
	}
}

// ReformatAll applies Reformat to every review in a batch, matching
// reformat_schema_graph's list-recursion.
func ReformatAll(reviews []item.Item, opts FormatOptions, r *registry.Registry) ([]interface{}, error) {
	out := make([]interface{}, len(reviews))
	for i, rev := range reviews {
		reshaped, err := Reformat(rev, opts, r)
		if err != nil {
			return nil, err
		}
		out[i] = reshaped
	}
	return out, nil
}
