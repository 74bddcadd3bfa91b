package disk_test

import (
	"fmt"
	"log"
	"os"

	"github.com/muninn-cache/muninn/pkg/disk"
	"github.com/muninn-cache/muninn/pkg/shape"
)

type Profile struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Example demonstrates the save / retrieve round trip with shape
// reconstruction.
func Example() {
	dir, err := os.MkdirTemp("", "muninn_example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	// Register the cached types once at startup
	registry := shape.NewRegistry()
	if err := registry.Register("Profile", Profile{}); err != nil {
		log.Fatal(err)
	}

	store, err := disk.New(dir, shape.NewResolver(registry))
	if err != nil {
		log.Fatal(err)
	}

	record, err := store.NewRecord([]Profile{{ID: 1, Name: "Ana"}, {ID: 2, Name: "Bo"}})
	if err != nil {
		log.Fatal(err)
	}
	if err := store.SaveRecord("profiles", record, false, ""); err != nil {
		log.Fatal(err)
	}

	retrieved, ok := store.RetrieveRecord("profiles", false, "")
	if !ok {
		log.Fatal("cache miss")
	}

	profiles := retrieved.Data.([]Profile)
	fmt.Printf("container: %s\n", retrieved.DataContainerTypeName)
	fmt.Printf("profiles:  %d\n", len(profiles))
	fmt.Printf("first:     %s\n", profiles[0].Name)

	// Output:
	// container: collection
	// profiles:  2
	// first:     Ana
}
