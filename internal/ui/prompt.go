// Package ui implements the interactive terminal prompts for the planning
// session: region selection and start/destination place selection.
package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/route-cli/internal/config"
	"github.com/sells-group/route-cli/internal/geo"
	"github.com/sells-group/route-cli/internal/graph"
)

// ErrAborted is returned when the input stream ends before a selection is made.
var ErrAborted = errors.New("ui: input closed")

// Geocoder resolves a free-text place query to a bounding box.
type Geocoder interface {
	SearchBoundingBox(query string) (geo.BoundingBox, bool, error)
}

// Prompter runs line-oriented prompts over an arbitrary reader/writer pair,
// which keeps the flows testable with plain strings.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter creates a Prompter reading from r and writing to w.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(r), out: w}
}

// SelectRegion asks the user for a query region: a preset, a geocoded city
// search, or a manually entered bounding box.
func (p *Prompter) SelectRegion(geocoder Geocoder) (geo.BoundingBox, error) {
	for {
		fmt.Fprintln(p.out, "Select a region:")
		fmt.Fprintln(p.out, "  1. Choose a preset region")
		fmt.Fprintln(p.out, "  2. Search for a city by name")
		fmt.Fprintln(p.out, "  3. Enter a bounding box manually")

		choice, err := p.ask("Choice [1-3]: ")
		if err != nil {
			return geo.BoundingBox{}, err
		}

		switch choice {
		case "1":
			box, err := p.selectPreset()
			if err == nil || !errors.Is(err, errRetry) {
				return box, err
			}
		case "2":
			box, err := p.searchCity(geocoder)
			if err == nil || !errors.Is(err, errRetry) {
				return box, err
			}
		case "3":
			box, err := p.manualBox()
			if err == nil || !errors.Is(err, errRetry) {
				return box, err
			}
		default:
			fmt.Fprintln(p.out, "Please enter 1, 2 or 3.")
		}
	}
}

// errRetry sends a sub-flow back to the main region menu.
var errRetry = errors.New("ui: retry")

func (p *Prompter) selectPreset() (geo.BoundingBox, error) {
	fmt.Fprintln(p.out, "Preset regions:")
	for i, r := range config.PresetRegions {
		fmt.Fprintf(p.out, "  %d. %s\n", i+1, r.Name)
	}

	choice, err := p.ask(fmt.Sprintf("Region [1-%d, or 0 to go back]: ", len(config.PresetRegions)))
	if err != nil {
		return geo.BoundingBox{}, err
	}
	idx, err := strconv.Atoi(choice)
	if err != nil || idx < 0 || idx > len(config.PresetRegions) {
		fmt.Fprintln(p.out, "Invalid selection.")
		return geo.BoundingBox{}, errRetry
	}
	if idx == 0 {
		return geo.BoundingBox{}, errRetry
	}

	region := config.PresetRegions[idx-1]
	fmt.Fprintf(p.out, "Selected %s\n", region.Name)
	return region.Box, nil
}

func (p *Prompter) searchCity(geocoder Geocoder) (geo.BoundingBox, error) {
	query, err := p.ask("City name: ")
	if err != nil {
		return geo.BoundingBox{}, err
	}
	if query == "" {
		return geo.BoundingBox{}, errRetry
	}

	box, ok, err := geocoder.SearchBoundingBox(query)
	if err != nil {
		return geo.BoundingBox{}, eris.Wrap(err, "ui: city search")
	}
	if !ok {
		fmt.Fprintf(p.out, "No results for %q.\n", query)
		return geo.BoundingBox{}, errRetry
	}

	fmt.Fprintf(p.out, "Found %q: %s\n", query, box)
	return box, nil
}

func (p *Prompter) manualBox() (geo.BoundingBox, error) {
	line, err := p.ask("Bounding box (south,west,north,east): ")
	if err != nil {
		return geo.BoundingBox{}, err
	}

	parts := strings.Split(line, ",")
	if len(parts) != 4 {
		fmt.Fprintln(p.out, "Expected four comma-separated numbers.")
		return geo.BoundingBox{}, errRetry
	}
	vals := make([]float64, 4)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			fmt.Fprintf(p.out, "Not a number: %q\n", part)
			return geo.BoundingBox{}, errRetry
		}
		vals[i] = v
	}

	box := geo.BoundingBox{South: vals[0], West: vals[1], North: vals[2], East: vals[3]}
	if err := box.Validate(); err != nil {
		fmt.Fprintf(p.out, "Invalid bounding box: %v\n", err)
		return geo.BoundingBox{}, errRetry
	}
	return box, nil
}

// SelectPlace asks the user to pick one mapped place, either by browsing a
// category or by searching names. label names the role of the selection
// ("start", "destination").
func (p *Prompter) SelectPlace(places []graph.Place, label string) (graph.Place, error) {
	if len(places) == 0 {
		return graph.Place{}, errors.New("ui: no places to choose from")
	}

	for {
		fmt.Fprintf(p.out, "Select the %s place:\n", label)
		fmt.Fprintln(p.out, "  1. Browse by category")
		fmt.Fprintln(p.out, "  2. Search by name")

		choice, err := p.ask("Choice [1-2]: ")
		if err != nil {
			return graph.Place{}, err
		}

		switch choice {
		case "1":
			place, err := p.browseCategories(places)
			if err == nil || !errors.Is(err, errRetry) {
				return place, err
			}
		case "2":
			place, err := p.searchPlaces(places)
			if err == nil || !errors.Is(err, errRetry) {
				return place, err
			}
		default:
			fmt.Fprintln(p.out, "Please enter 1 or 2.")
		}
	}
}

func (p *Prompter) browseCategories(places []graph.Place) (graph.Place, error) {
	byCategory := make(map[string][]graph.Place)
	for _, place := range places {
		byCategory[place.Category] = append(byCategory[place.Category], place)
	}
	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	fmt.Fprintln(p.out, "Categories:")
	for i, c := range categories {
		fmt.Fprintf(p.out, "  %d. %s (%d places)\n", i+1, c, len(byCategory[c]))
	}

	choice, err := p.ask(fmt.Sprintf("Category [1-%d, or 0 to go back]: ", len(categories)))
	if err != nil {
		return graph.Place{}, err
	}
	idx, err := strconv.Atoi(choice)
	if err != nil || idx < 0 || idx > len(categories) {
		fmt.Fprintln(p.out, "Invalid selection.")
		return graph.Place{}, errRetry
	}
	if idx == 0 {
		return graph.Place{}, errRetry
	}

	return p.pickFromList(byCategory[categories[idx-1]])
}

func (p *Prompter) searchPlaces(places []graph.Place) (graph.Place, error) {
	query, err := p.ask("Place name contains: ")
	if err != nil {
		return graph.Place{}, err
	}
	if query == "" {
		return graph.Place{}, errRetry
	}

	needle := strings.ToLower(query)
	var matches []graph.Place
	for _, place := range places {
		if strings.Contains(strings.ToLower(place.Name), needle) {
			matches = append(matches, place)
		}
	}
	if len(matches) == 0 {
		fmt.Fprintf(p.out, "No places match %q.\n", query)
		return graph.Place{}, errRetry
	}

	return p.pickFromList(matches)
}

func (p *Prompter) pickFromList(places []graph.Place) (graph.Place, error) {
	sort.Slice(places, func(i, j int) bool { return places[i].Name < places[j].Name })

	for i, place := range places {
		line := place.Name
		if place.Street != "" {
			line += ", " + place.Street
		}
		fmt.Fprintf(p.out, "  %d. %s [%s]\n", i+1, line, place.Category)
	}

	choice, err := p.ask(fmt.Sprintf("Place [1-%d, or 0 to go back]: ", len(places)))
	if err != nil {
		return graph.Place{}, err
	}
	idx, err := strconv.Atoi(choice)
	if err != nil || idx < 0 || idx > len(places) {
		fmt.Fprintln(p.out, "Invalid selection.")
		return graph.Place{}, errRetry
	}
	if idx == 0 {
		return graph.Place{}, errRetry
	}

	selected := places[idx-1]
	fmt.Fprintf(p.out, "Selected %s\n", selected.Name)
	return selected, nil
}

// Confirm asks a yes/no question; empty input means yes.
func (p *Prompter) Confirm(question string) (bool, error) {
	answer, err := p.ask(question + " [Y/n]: ")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "" || answer == "y" || answer == "yes", nil
}

func (p *Prompter) ask(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", eris.Wrap(err, "ui: read input")
		}
		return "", ErrAborted
	}
	return strings.TrimSpace(p.in.Text()), nil
}
