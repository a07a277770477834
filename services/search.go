package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"restay/dto"
	"restay/models"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// SearchService scores properties against a free-text query. Names and
// locations are matched fuzzily so "sunrize koramangala" still finds
// "Sunrise PG, Koramangala".
type SearchService struct {
	properties *PropertyService
}

func NewSearchService(properties *PropertyService) *SearchService {
	return &SearchService{properties: properties}
}

func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ToLower(unidecode.Unidecode(input))
	return input
}

func createMatcher(keywords []string) *closestmatch.ClosestMatch {
	return closestmatch.New(keywords, []int{2, 3})
}

func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len(a))
	if float64(len(b)) > maxLen {
		maxLen = float64(len(b))
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/maxLen
}

func prepareUniqueList(properties []models.Property, field func(models.Property) string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, p := range properties {
		v := normalizeInput(field(p))
		if v != "" && !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	return values
}

func calculateScore(query string, property models.Property, cmName, cmLocation *closestmatch.ClosestMatch) int {
	normalizedQuery := normalizeInput(query)
	score := 0

	normalizedName := normalizeInput(property.Name)
	if strings.Contains(normalizedName, normalizedQuery) {
		score += 25
	} else if cmName.Closest(normalizedQuery) == normalizedName {
		score += 18
	} else if calculateSimilarity(normalizedQuery, normalizedName) > 0.7 {
		score += 12
	}

	normalizedLocation := normalizeInput(property.Location)
	if strings.Contains(normalizedLocation, normalizedQuery) {
		score += 13
	} else if cmLocation.Closest(normalizedQuery) == normalizedLocation {
		score += 8
	}

	if normalizedQuery == property.Type {
		score += 5
	}

	for _, tpl := range property.RoomTypes {
		if calculateSimilarity(normalizedQuery, normalizeInput(tpl.Name)) > 0.7 {
			score += 4
			break
		}
	}

	return score
}

func filterAndScoreProperties(query string, properties []models.Property, cmName, cmLocation *closestmatch.ClosestMatch) []dto.ScoredProperty {
	var scored []dto.ScoredProperty
	scoreCh := make(chan dto.ScoredProperty, len(properties))
	var wg sync.WaitGroup

	for _, property := range properties {
		wg.Add(1)
		go func(property models.Property) {
			defer wg.Done()
			score := calculateScore(query, property, cmName, cmLocation)
			if score > 0 {
				scoreCh <- dto.ScoredProperty{
					Property: property,
					Score:    score,
				}
			}
		}(property)
	}

	go func() {
		wg.Wait()
		close(scoreCh)
	}()

	for sp := range scoreCh {
		scored = append(scored, sp)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// Search loads the property listing and returns the positively scored
// matches, best first. An empty query matches nothing.
func (s *SearchService) Search(ctx context.Context, query string) ([]dto.ScoredProperty, error) {
	if strings.TrimSpace(query) == "" {
		return []dto.ScoredProperty{}, nil
	}

	properties, _, err := s.properties.List(ctx, dto.ListQuery{})
	if err != nil {
		return nil, err
	}
	if len(properties) == 0 {
		return []dto.ScoredProperty{}, nil
	}

	cmName := createMatcher(prepareUniqueList(properties, func(p models.Property) string { return p.Name }))
	cmLocation := createMatcher(prepareUniqueList(properties, func(p models.Property) string { return p.Location }))

	return filterAndScoreProperties(query, properties, cmName, cmLocation), nil
}
