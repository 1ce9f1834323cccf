// cmd/tools/registry-updater/main.go
package main

import (
	"flag"
	"fmt"
	"os"

	"project-tracker/internal/common/config"
	"project-tracker/pkg/registry"
)

const defaultRegistryPath = "configs/activity-registry.json"

func main() {
	addCmd := flag.NewFlagSet("add", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	syncCmd := flag.NewFlagSet("check-config", flag.ExitOnError)

	// Add command flags
	addPath := addCmd.String("path", defaultRegistryPath, "Path to registry file")
	idAdd := addCmd.String("id", "", "Activity ID (e.g., notify-approver)")
	displayName := addCmd.String("displayName", "", "Display Name (e.g., Notify Approver)")
	description := addCmd.String("description", "", "Description")
	category := addCmd.String("category", "", "Category (generation, approval, assistant)")
	taskType := addCmd.String("taskType", "", "Zeebe Task Type (defaults to id)")
	version := addCmd.String("version", "1.0.0", "Version")
	implStatus := addCmd.String("status", registry.StatusPlanned, "Implementation Status (planned, in-progress, completed, verified)")
	timeout := addCmd.String("timeout", "10s", "Job timeout")

	// Update command flags
	updatePath := updateCmd.String("path", defaultRegistryPath, "Path to registry file")
	idUpdate := updateCmd.String("id", "", "Activity ID to update")
	field := updateCmd.String("field", "", "Field to update (status, version, etc.)")
	value := updateCmd.String("value", "", "New value for the field")

	validatePath := validateCmd.String("path", defaultRegistryPath, "Path to registry file")
	syncPath := syncCmd.String("path", defaultRegistryPath, "Path to registry file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add":
		addCmd.Parse(os.Args[2:])
		if *idAdd == "" || *displayName == "" || *description == "" || *category == "" {
			fmt.Println("Error: id, displayName, description and category are required for add.")
			addCmd.Usage()
			os.Exit(1)
		}
		if *taskType == "" {
			*taskType = *idAdd
		}
		reg, err := registry.LoadOrCreate(*addPath)
		exitOn(err, "Error adding activity")
		err = reg.Add(registry.Activity{
			ID:                   *idAdd,
			DisplayName:          *displayName,
			Description:          *description,
			Category:             *category,
			Version:              *version,
			TaskType:             *taskType,
			ImplementationStatus: *implStatus,
			InputSchema:          map[string]interface{}{},
			OutputSchema:         map[string]interface{}{},
			ErrorCodes:           []string{},
			Timeout:              *timeout,
			Workflows:            []string{},
			Tags:                 []string{},
		})
		exitOn(err, "Error adding activity")
		exitOn(reg.Save(*addPath), "Error saving registry")
		fmt.Printf("Added activity: %s\n", *idAdd)

	case "update":
		updateCmd.Parse(os.Args[2:])
		if *idUpdate == "" || *field == "" || *value == "" {
			fmt.Println("Error: id, field, and value are required for update.")
			updateCmd.Usage()
			os.Exit(1)
		}
		reg, err := registry.LoadRegistry(*updatePath)
		exitOn(err, "Error loading registry")
		exitOn(reg.Update(*idUpdate, *field, *value), "Error updating activity")
		exitOn(reg.Save(*updatePath), "Error saving registry")
		fmt.Printf("Updated activity %s, field %s to %s\n", *idUpdate, *field, *value)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		reg, err := registry.LoadRegistry(*validatePath)
		exitOn(err, "Error loading registry")
		exitOn(reg.Validate(), "Registry validation failed")
		fmt.Printf("Registry validation passed. Found %d activities.\n", len(reg.Activities))

	case "check-config":
		// Every worker section in configs/config.yaml must have a registry entry.
		syncCmd.Parse(os.Args[2:])
		reg, err := registry.LoadRegistry(*syncPath)
		exitOn(err, "Error loading registry")
		cfg, err := config.Load()
		exitOn(err, "Error loading config")

		taskTypes := make([]string, 0, len(cfg.Workers))
		for t := range cfg.Workers {
			taskTypes = append(taskTypes, t)
		}
		if missing := reg.Missing(taskTypes); len(missing) > 0 {
			fmt.Printf("Task types configured but not registered: %v\n", missing)
			os.Exit(1)
		}
		fmt.Printf("All %d configured workers are registered.\n", len(taskTypes))

	case "help":
		fallthrough
	default:
		help()
	}
}

func exitOn(err error, msg string) {
	if err != nil {
		fmt.Printf("%s: %v\n", msg, err)
		os.Exit(1)
	}
}

func help() {
	fmt.Print(`
Usage: registry-updater <command> [flags]

Commands:
  add           Add a new activity to the registry
  update        Update an existing activity's field
  validate      Validate the registry file
  check-config  Check that every configured worker has a registry entry
  help          Show this help message

Examples:
  registry-updater add -id notify-approver -displayName "Notify Approver" -description "Notifies signers of a pending change request" -category approval
  registry-updater update -id notify-approver -field status -value completed
  registry-updater validate -path configs/activity-registry.json

Use 'registry-updater <command> -h' for more information about a command.
`)
}
