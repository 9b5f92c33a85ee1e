package generator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sitesmith/sitesmith/internal/crm"
	"github.com/sitesmith/sitesmith/internal/models"
)

const notSpecified = "not specified"

// Assemble renders the full generation prompt from a client's profile,
// assets, notes and the operator's instruction. Sections appear in a
// fixed order and missing inputs are written out as "not specified" so
// the model never has to guess whether something was omitted.
//
// Pure function: identical inputs produce byte-identical output, which
// keeps retries and tests reproducible.
func Assemble(profile *crm.Profile, assets []crm.Asset, notes, instruction string, prior *models.SiteArtifact) string {
	var sb strings.Builder

	sb.WriteString("# Website Generation Request\n\n")

	sb.WriteString("## Business Identity\n")
	writeField(&sb, "Client", profileField(profile, func(p *crm.Profile) string { return p.DisplayName }))
	writeField(&sb, "Business name", profileField(profile, func(p *crm.Profile) string { return p.BusinessName }))
	writeField(&sb, "Address", profileField(profile, func(p *crm.Profile) string { return p.Address }))
	writeContacts(&sb, profile)

	sb.WriteString("\n## Available Assets\n")
	if len(assets) == 0 {
		sb.WriteString(notSpecified + "\n")
	} else {
		for i, a := range assets {
			contentType := a.ContentType
			if contentType == "" {
				contentType = notSpecified
			}
			fmt.Fprintf(&sb, "%d. %s (%s): %s\n", i+1, a.Name, contentType, a.URL)
		}
	}

	sb.WriteString("\n## Client Notes\n")
	if strings.TrimSpace(notes) == "" {
		sb.WriteString(notSpecified + "\n")
	} else {
		sb.WriteString(notes + "\n")
	}

	sb.WriteString("\n## Instruction\n")
	sb.WriteString(instruction + "\n")

	sb.WriteString("\n## Design Constraints\n")
	sb.WriteString("- The layout must be responsive and usable on phones and desktops.\n")
	sb.WriteString("- The business contact information above must appear on the page.\n")
	sb.WriteString("- Output one complete standalone HTML document; inline CSS and JS unless you emit separate fenced css/js blocks.\n")
	sb.WriteString("- No build steps, package managers or server-side code.\n")

	if prior != nil {
		sb.WriteString("\n## Current Website HTML\n")
		sb.WriteString("Edit the document below in place. Keep everything the instruction does not ask you to change.\n\n")
		sb.WriteString(prior.HTML)
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeField(sb *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		value = notSpecified
	}
	fmt.Fprintf(sb, "- %s: %s\n", label, value)
}

// Contact fields live in a map; keys are sorted so assembly stays
// deterministic.
func writeContacts(sb *strings.Builder, profile *crm.Profile) {
	if profile == nil || len(profile.ContactFields) == 0 {
		writeField(sb, "Contact", "")
		return
	}
	keys := make([]string, 0, len(profile.ContactFields))
	for k := range profile.ContactFields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		writeField(sb, "Contact "+k, profile.ContactFields[k])
	}
}

func profileField(profile *crm.Profile, pick func(*crm.Profile) string) string {
	if profile == nil {
		return ""
	}
	return pick(profile)
}
