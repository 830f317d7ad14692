package domain

import (
	"fmt"
	"strings"

	m "github.com/mouse-blink/covmerge/internal/model"
)

// resourceGroup holds every observation sharing one resource key, in the
// order they were read.
type resourceGroup struct {
	key          string
	observations []m.Observation
}

// groupByResource partitions observations by resource key, keeping the
// first-seen order of keys.
func groupByResource(observations []m.Observation) []resourceGroup {
	index := make(map[string]int)

	var groups []resourceGroup

	for _, obs := range observations {
		key := obs.Key()

		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, resourceGroup{key: key})
		}

		groups[i].observations = append(groups[i].observations, obs)
	}

	return groups
}

// FindInconsistentContent returns the resources whose non-empty
// observations carry more than one content fingerprint.
func FindInconsistentContent(observations []m.Observation) []m.InconsistentResource {
	var inconsistent []m.InconsistentResource

	for _, group := range groupByResource(observations) {
		variants := contentVariants(group.observations)
		if len(variants) > 1 {
			inconsistent = append(inconsistent, m.InconsistentResource{
				ResourceURL: group.observations[0].ResourceURL,
				Variants:    variants,
			})
		}
	}

	return inconsistent
}

func contentVariants(observations []m.Observation) []m.ContentVariant {
	index := make(map[string]int)

	var variants []m.ContentVariant

	for _, obs := range observations {
		if obs.IsContentEmpty {
			continue
		}

		i, ok := index[obs.Fingerprint]
		if !ok {
			i = len(variants)
			index[obs.Fingerprint] = i
			variants = append(variants, m.ContentVariant{Fingerprint: obs.Fingerprint})
		}

		variants[i].Pages = append(variants[i].Pages, m.PageRef{SourceFile: obs.SourceFile, PageURL: obs.PageURL})
	}

	return variants
}

// FindAllEmptyContent returns the resources that never came with any text.
func FindAllEmptyContent(observations []m.Observation) []m.EmptyResource {
	var empty []m.EmptyResource

	for _, group := range groupByResource(observations) {
		allEmpty := true

		for _, obs := range group.observations {
			if !obs.IsContentEmpty {
				allEmpty = false
				break
			}
		}

		if allEmpty {
			empty = append(empty, m.EmptyResource{ResourceURL: group.observations[0].ResourceURL})
		}
	}

	return empty
}

// ExcludeResources drops every observation of the given resource URLs.
func ExcludeResources(observations []m.Observation, resourceURLs ...string) []m.Observation {
	if len(resourceURLs) == 0 {
		return observations
	}

	excluded := make(map[string]struct{}, len(resourceURLs))
	for _, u := range resourceURLs {
		excluded[m.ResourceKey(u)] = struct{}{}
	}

	kept := make([]m.Observation, 0, len(observations))

	for _, obs := range observations {
		if _, drop := excluded[obs.Key()]; !drop {
			kept = append(kept, obs)
		}
	}

	return kept
}

// RenderInconsistent formats the excluded.txt diagnostic.
func RenderInconsistent(resources []m.InconsistentResource) string {
	var sb strings.Builder

	for i, res := range resources {
		if i > 0 {
			sb.WriteString("\n")
		}

		fmt.Fprintf(&sb, "%s: content differs between pages, coverage not aggregated\n", res.ResourceURL)

		for _, variant := range res.Variants {
			fmt.Fprintf(&sb, "  hash %s seen on:\n", variant.Fingerprint)

			for _, page := range variant.Pages {
				fmt.Fprintf(&sb, "    %s (%s)\n", page.PageURL, page.SourceFile)
			}
		}
	}

	return sb.String()
}

// RenderAllEmpty formats the excludedEmpty.txt diagnostic, one URL per line.
func RenderAllEmpty(resources []m.EmptyResource) string {
	var sb strings.Builder

	for _, res := range resources {
		sb.WriteString(res.ResourceURL)
		sb.WriteString("\n")
	}

	return sb.String()
}
