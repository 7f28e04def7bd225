package internal

import (
	"reflect"
	"sort"
	"testing"
	"time"

	"github.com/minaorangina/doomlings/deck"
)

func failure(t *testing.T, got, want interface{}) {
	t.Helper()

	t.Errorf("\nGot: %+v\nwant: %+v", got, want)
}

// AssertNoError checks for the non-existence of an error
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
}

// AssertErrored checks for the existence of an error
func AssertErrored(t *testing.T, err error) {
	t.Helper()

	if err == nil {
		t.Fatal("Expected an error, but got nil")
	}
}

// AssertEqual checks that the values are equal
func AssertEqual(t *testing.T, got, want interface{}) {
	t.Helper()

	if got != want {
		failure(t, got, want)
	}
}

// AssertDeepEqual checks that the values are equal
func AssertDeepEqual(t *testing.T, got, want interface{}) {
	t.Helper()

	if !reflect.DeepEqual(got, want) {
		failure(t, got, want)
	}
}

// AssertTrue checks that the value is true
func AssertTrue(t *testing.T, got bool) {
	t.Helper()

	if got != true {
		t.Error("Expected to be true, but it wasn't")
	}
}

// AssertNotNil checks that the value is not nil
func AssertNotNil(t *testing.T, got interface{}) {
	t.Helper()

	if got == nil {
		t.Error("Value is unexpectedly nil")
	}
}

// AssertNotEmptyString checks the string is not the empty string
func AssertNotEmptyString(t *testing.T, got string) {
	t.Helper()

	if got == "" {
		t.Error("unexpected empty string")
	}
}

// CardIDs returns the instance ids held across piles, sorted.
func CardIDs(piles ...[]deck.Card) []string {
	ids := []string{}
	for _, pile := range piles {
		for _, c := range pile {
			ids = append(ids, c.InstanceID)
		}
	}
	sort.Strings(ids)
	return ids
}

// AssertUniqueCards fails for every instance id found in more than one place.
func AssertUniqueCards(t *testing.T, piles ...[]deck.Card) {
	t.Helper()

	seen := map[string]string{}
	for _, pile := range piles {
		for _, c := range pile {
			if name, ok := seen[c.InstanceID]; ok {
				t.Errorf("card %s held twice (%s, %s)", c.InstanceID, name, c.Name)
				continue
			}
			seen[c.InstanceID] = c.Name
		}
	}
}

// AssertCardsConserved checks that got and want hold the same instance ids,
// reporting the cards lost and the cards gained.
func AssertCardsConserved(t *testing.T, got, want []string) {
	t.Helper()

	counts := map[string]int{}
	for _, id := range want {
		counts[id]++
	}
	for _, id := range got {
		counts[id]--
	}
	lost, gained := []string{}, []string{}
	for id, n := range counts {
		for ; n > 0; n-- {
			lost = append(lost, id)
		}
		for ; n < 0; n++ {
			gained = append(gained, id)
		}
	}
	if len(lost) > 0 || len(gained) > 0 {
		sort.Strings(lost)
		sort.Strings(gained)
		t.Errorf("cards not conserved\nlost: %v\ngained: %v", lost, gained)
	}
}

// AssertCardNames checks the names of a pile, in order.
func AssertCardNames(t *testing.T, pile []deck.Card, want ...string) {
	t.Helper()

	got := []string{}
	for _, c := range pile {
		got = append(got, c.Name)
	}
	if want == nil {
		want = []string{}
	}
	if !reflect.DeepEqual(got, want) {
		failure(t, got, want)
	}
}

func Within(t *testing.T, d time.Duration, assert func()) {
	t.Helper()

	done := make(chan struct{}, 1)

	go func() {
		assert()
		done <- struct{}{}
	}()

	select {
	case <-time.After(d):
		t.Error("timed out")
	case <-done:
	}
}
