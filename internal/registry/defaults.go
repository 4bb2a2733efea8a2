package registry

// RegisterDefaults populates r with every item type the review pipeline
// produces or consumes: the core content types (Rating, CreativeWork
// variants, Organization/Person), the bot descriptors for each reviewer,
// and the Review variant each reviewer emits.
//
// Bot descriptors all share the same shape: they are SoftwareApplication/Bot
// instances identified by name, creation date, version and the model or
// service they're based on (isBasedOn), routed under
// /bot/{@type}/{softwareVersion}/{identifier}. Review variants are all
// identified by author, subject (itemReviewed or claimReviewed) and rating,
// routed under /review/{identifier}.
func RegisterDefaults(r *Registry) error {
	for _, t := range defaultDescriptors {
		if err := r.Register(t.name, t.descriptor); err != nil {
			return err
		}
	}
	return nil
}

type namedDescriptor struct {
	name       string
	descriptor Descriptor
}

var defaultDescriptors = []namedDescriptor{
	// Core content types (content.py)
	{"Rating", Descriptor{
		IdentKeys:     []string{"@type", "reviewAspect", "ratingValue", "confidence", "ratingExplanation"},
		RouteTemplate: "/rating/{identifier}",
	}},
	{"AggregateRating", Descriptor{
		SuperTypes:    []string{"Rating"},
		IdentKeys:     []string{"@type", "reviewAspect", "ratingValue", "confidence", "ratingExplanation", "ratingCount", "reviewCount"},
		RouteTemplate: "/rating/{identifier}",
	}},
	{"WebPage", Descriptor{
		SuperTypes:  []string{"CreativeWork"},
		IdentKeys:   []string{"@type", "url"},
		ItemRefKeys: []string{"mentioned_in"},
	}},
	{"Article", Descriptor{
		SuperTypes: []string{"CreativeWork"},
		IdentKeys:  []string{"@type", "url"},
	}},
	{"Sentence", Descriptor{
		SuperTypes:    []string{"CreativeWork"},
		IdentKeys:     []string{"@type", "text"},
		RouteTemplate: "/sentence/{identifier}",
		ItemRefKeys:   []string{"appearance"},
	}},
	{"Claim", Descriptor{
		SuperTypes:    []string{"CreativeWork", "Sentence"},
		IdentKeys:     []string{"@type", "text"},
		RouteTemplate: "/sentence/{identifier}",
		ItemRefKeys:   []string{"appearance"},
	}},
	{"Organization", Descriptor{
		IdentKeys:     []string{"@type", "name", "url"},
		RouteTemplate: "/organization/{identifier}",
	}},
	{"Person", Descriptor{
		IdentKeys:     []string{"@type", "name", "url"},
		RouteTemplate: "/person/{identifier}",
	}},
	{"schema:Organization", Descriptor{
		IdentKeys:     []string{"@type", "name", "url"},
		RouteTemplate: "/organization/{identifier}",
	}},
	{"SentenceEncoder", Descriptor{
		SuperTypes:    []string{"SoftwareApplication", "Bot"},
		IdentKeys:     []string{"@type", "name", "dateCreated", "softwareVersion", "author", "launchConfiguration"},
		RouteTemplate: "/bot/{@type}/{softwareVersion}/{identifier}",
		ItemRefKeys:   []string{"author"},
	}},
	{"SemSentSimReviewer", Descriptor{
		SuperTypes:    []string{"SoftwareApplication", "Bot"},
		IdentKeys:     []string{"@type", "name", "dateCreated", "softwareVersion", "isBasedOn", "launchConfiguration"},
		RouteTemplate: "/bot/{@type}/{softwareVersion}/{identifier}",
		ItemRefKeys:   []string{"author"},
	}},

	// Check-worthiness reviewer (sent_worthrev.py)
	{"SentCheckWorthinessReviewer", botDescriptor()},
	{"SentCheckWorthinessReview", reviewDescriptor()},

	// Stance reviewer (sentstancecredrev.py)
	{"SentStanceReviewer", botDescriptor()},
	{"SentStanceReview", reviewDescriptor()},

	// Similarity reviewer (semsent_simrev.py)
	{"SentSimilarityReview", reviewDescriptor()},

	// Aggregated polar-similarity reviewer (aggsent_simreviewer.py)
	{"SentPolarityReviewer", botDescriptor()},
	{"SentPolarSimilarityReview", Descriptor{
		SuperTypes:    []string{"SimilarityReview", "Review"},
		IdentKeys:     []string{"@type", "headline", "reviewBody", "dateCreated", "author", "itemReviewed", "reviewRating", "isBasedOn"},
		RouteTemplate: "/review/{identifier}",
		ItemRefKeys:   []string{"author", "itemReviewed", "reviewRating", "isBasedOn"},
	}},

	// Tweet credibility reviewer (tweet_credrev.py)
	{"TweetCredReviewer", botDescriptor()},
	{"TweetCredReview", credReviewDescriptor()},

	// ClaimReview normalizer (claimreview_normalizer.py)
	{"ClaimReviewNormalizer", botDescriptor()},
	{"NormalisedClaimReview", Descriptor{
		SuperTypes:    []string{"ClaimReview", "Review"},
		IdentKeys:     []string{"@type", "dateCreated", "author", "claimReviewed", "reviewRating", "reviewAspect", "basedOnClaimReview"},
		RouteTemplate: "/review/{identifier}",
		ItemRefKeys:   []string{"author", "reviewRating", "basedOnClaimReview"},
	}},
	{"schema:ClaimReview", Descriptor{
		IdentKeys: []string{"url"},
		// no route_template: a schema:ClaimReview always already carries
		// its own external url.
	}},

	// Aggregated query-sentence credibility reviewer (aggqsent_credrev.py)
	{"AggQSentCredReviewer", botDescriptor()},
	{"AggQSentCredReview", credReviewDescriptor()},

	// DB sentence credibility reviewer (dbsent_credrev.py)
	{"DBSentCredReviewer", botDescriptor()},
	{"DBSentCredReview", credReviewDescriptor()},

	// Query sentence credibility reviewer (qsent_credrev.py)
	{"QSentCredReviewer", botDescriptor()},
	{"QSentCredReview", credReviewDescriptor()},

	// Article credibility reviewer (article_credrev.py)
	{"ArticleCredReviewer", botDescriptor()},
	{"ArticleCredReview", credReviewDescriptor()},

	// Website credibility reviewer (website_credrev.py)
	{"MisinfoMeSourceCredReviewer", botDescriptor()},
	{"WebSiteCredReview", Descriptor{
		SuperTypes:    []string{"CredibilityReview", "Review"},
		IdentKeys:     []string{"@type", "dateCreated", "author", "itemReviewed", "reviewRating"},
		RouteTemplate: "/review/{identifier}",
		ItemRefKeys:   []string{"author", "itemReviewed", "reviewRating"},
	}},

	// Top-level document credibility predictor (predictor.py)
	{"CredReviewer", botDescriptor()},
	{"DocumentCredReview", Descriptor{
		SuperTypes:    []string{"CreativeWork", "Review"},
		IdentKeys:     []string{"@type", "reviewAspect", "itemReviewed", "dateCreated", "author", "reviewRating"},
		RouteTemplate: "/review/{identifier}",
		ItemRefKeys:   []string{"itemReviewed", "author", "reviewRating"},
	}},

	// Tweet and website content types. These are never passed to
	// register_acred_type in the original - they're only recognized via
	// @type predicates - but the identity engine needs descriptors for
	// every type it may encounter in a tree.
	{"Tweet", Descriptor{
		SuperTypes: []string{"SocialMediaPosting", "CreativeWork"},
		IdentKeys:  []string{"@type", "url"},
	}},
	{"SocialMediaPosting", Descriptor{
		SuperTypes: []string{"CreativeWork"},
		IdentKeys:  []string{"@type", "url"},
	}},
	{"WebSite", Descriptor{
		IdentKeys: []string{"@type", "url"},
		// identifier equals url itself for websites (str_as_website),
		// so no route_template: it already carries url as identifier.
	}},
	{"SentencePair", Descriptor{
		IdentKeys: []string{"@type", "text"},
	}},
}

// botDescriptor is the shared shape for every *Reviewer bot: a
// SoftwareApplication/Bot identified by name, creation date, version and
// the model/service it's based on.
func botDescriptor() Descriptor {
	return Descriptor{
		SuperTypes:    []string{"SoftwareApplication", "Bot"},
		IdentKeys:     []string{"@type", "name", "dateCreated", "softwareVersion", "isBasedOn", "launchConfiguration"},
		RouteTemplate: "/bot/{@type}/{softwareVersion}/{identifier}",
		ItemRefKeys:   []string{"isBasedOn"},
	}
}

// reviewDescriptor is the shared shape for a plain Review: identified by
// author, subject and rating.
func reviewDescriptor() Descriptor {
	return Descriptor{
		SuperTypes:    []string{"Review"},
		IdentKeys:     []string{"@type", "dateCreated", "author", "itemReviewed", "reviewRating"},
		RouteTemplate: "/review/{identifier}",
		ItemRefKeys:   []string{"author", "itemReviewed", "reviewRating"},
	}
}

// credReviewDescriptor is the shared shape for a CredibilityReview: like a
// plain Review, but additionally identified by the review(s) it is based on.
func credReviewDescriptor() Descriptor {
	return Descriptor{
		SuperTypes:    []string{"CredibilityReview", "Review"},
		IdentKeys:     []string{"@type", "dateCreated", "author", "itemReviewed", "reviewRating", "isBasedOn"},
		RouteTemplate: "/review/{identifier}",
		ItemRefKeys:   []string{"author", "itemReviewed", "reviewRating", "isBasedOn"},
	}
}
