// Package testing provides a component testing harness for elements.
//
// # Quick Start
//
// Create a tester, mount markup, and make assertions:
//
//	func TestMyButton(t *testing.T) {
//	    tester := elementstest.NewTesterWithT(t)
//	    require.NoError(t, components.Register(tester.Registry(), tester.Styles()))
//	    tester.Mount(`<m-button>Save</m-button>`)
//
//	    // Find nodes
//	    label := tester.Find(elementstest.ByText("Save")).First()
//
//	    // Simulate events
//	    tester.Click(elementstest.ByTag("m-button"))
//	    tester.Pump()
//	}
//
// Pump runs what a browser would run before the next paint: queued tasks,
// their microtasks (mutation records, style passes) and one animation
// frame (component renders).
//
// # Snapshot Testing
//
// Capture and compare the mounted tree and the synthesized rules:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/my_button.snapshot.json")
//
// Update snapshots with:
//
//	ELEMENTS_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import elementstest "github.com/go-drift/elements/pkg/testing"
package testing
