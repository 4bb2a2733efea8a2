// Package bot builds the self-describing metadata every reviewer bot emits
// as its "author" field: the organization that built it, and (elsewhere) the
// software version / launch configuration fields the identity engine hashes
// into the bot's own identifier.
package bot

import "github.com/coinform/credserve/internal/item"

// ESILabOrganization is the standard organization descriptor attached as
// the author of every reviewer bot this pipeline runs.
func ESILabOrganization() item.Item {
	return item.Item{
		"@type": "Organization",
		"name":  "Expert System Lab Madrid",
		"url":   "http://expertsystem.com",
	}
}
