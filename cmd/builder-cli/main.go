package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"go-prototype-builder/internal/config"
	"go-prototype-builder/internal/editor"
	"go-prototype-builder/internal/model"
	"go-prototype-builder/internal/preview"
	"go-prototype-builder/internal/prototypemanager"
	"go-prototype-builder/internal/storage"
	"go-prototype-builder/internal/templates"
	"go-prototype-builder/pkg/fsutils"
)

func main() {
	fmt.Println("Prototype Builder CLI")

	// --- Setup Phase ---
	projectRoot, err := os.Getwd()
	if err != nil {
		log.Fatalf("Error getting working directory: %v", err)
	}
	cfg, _, err := config.Load(projectRoot)
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	dataDir := filepath.Join(projectRoot, cfg.DataDir)

	store, err := storage.NewJSONStore(dataDir, cfg.StorageQuotaBytes)
	if err != nil {
		log.Fatalf("Error initializing storage: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	ids := model.UUIDGenerator{}
	clock := model.SystemClock{}
	manager := prototypemanager.NewManager(store, logger, ids, clock)
	library := templates.NewLibrary(store, logger, ids, clock)
	previewEngine := preview.NewEngine(store)

	fmt.Printf("Using data directory: %s\n", dataDir)

	// --- Command Parsing using 'flag' package ---
	listCmd := flag.NewFlagSet("list", flag.ExitOnError)
	createCmd := flag.NewFlagSet("create", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	deleteCmd := flag.NewFlagSet("delete", flag.ExitOnError)
	duplicateCmd := flag.NewFlagSet("duplicate", flag.ExitOnError)
	previewCmd := flag.NewFlagSet("preview", flag.ExitOnError)
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	templatesCmd := flag.NewFlagSet("templates", flag.ExitOnError)
	templateDeleteCmd := flag.NewFlagSet("template-delete", flag.ExitOnError)
	instantiateCmd := flag.NewFlagSet("instantiate", flag.ExitOnError)
	statsCmd := flag.NewFlagSet("stats", flag.ExitOnError)

	createName := createCmd.String("name", "", "Name of the prototype to create (required)")
	createDesc := createCmd.String("desc", "", "Description of the prototype (optional)")

	updateID := updateCmd.String("id", "", "ID of the prototype to update (required)")
	updateName := updateCmd.String("name", "", "New name for the prototype")
	updateDesc := updateCmd.String("desc", "", "New description")
	updateColor := updateCmd.String("color", "", "New primary color")

	deleteID := deleteCmd.String("id", "", "ID(s) of the prototype(s) to delete (comma-separated)")
	deleteYes := deleteCmd.Bool("yes", false, "Skip the confirmation prompt")

	duplicateID := duplicateCmd.String("id", "", "ID of the prototype to duplicate (required)")
	duplicateName := duplicateCmd.String("name", "", "Name for the copy (optional)")

	previewID := previewCmd.String("id", "", "ID of the prototype to preview (required)")

	exportID := exportCmd.String("id", "", "ID of the prototype to export (required)")
	exportDir := exportCmd.String("out", ".", "Directory to write the exported JSON file into")

	importFile := importCmd.String("file", "", "Path of the JSON file to import (required)")

	templatesKind := templatesCmd.String("kind", "", "Template kind: question|prototype|applicationStep (required)")

	templateDeleteKind := templateDeleteCmd.String("kind", "", "Template kind (required)")
	templateDeleteID := templateDeleteCmd.String("id", "", "Template ID (required)")

	instantiateKind := instantiateCmd.String("kind", "", "Template kind (required)")
	instantiateID := instantiateCmd.String("id", "", "Template ID (required)")
	instantiateInto := instantiateCmd.String("prototype", "", "Target prototype ID (required for step templates)")

	if len(os.Args) < 2 {
		printUsage()
		return
	}

	switch os.Args[1] {
	case "list":
		listCmd.Parse(os.Args[2:])
		handleListPrototypes(manager)
	case "create":
		createCmd.Parse(os.Args[2:])
		if *createName == "" {
			fmt.Println("Error: -name flag is required for create command")
			createCmd.Usage()
			return
		}
		handleCreatePrototype(manager, *createName, *createDesc)
	case "update":
		updateCmd.Parse(os.Args[2:])
		if *updateID == "" {
			fmt.Println("Error: -id flag is required for update command")
			updateCmd.Usage()
			return
		}
		handleUpdatePrototype(manager, *updateID, *updateName, *updateDesc, *updateColor)
	case "delete":
		deleteCmd.Parse(os.Args[2:])
		if *deleteID == "" {
			fmt.Println("Error: -id flag is required for delete command")
			deleteCmd.Usage()
			os.Exit(1)
		}
		handleDeletePrototypes(manager, *deleteID, *deleteYes)
	case "duplicate":
		duplicateCmd.Parse(os.Args[2:])
		if *duplicateID == "" {
			fmt.Println("Error: -id flag is required for duplicate command")
			duplicateCmd.Usage()
			return
		}
		handleDuplicatePrototype(manager, *duplicateID, *duplicateName)
	case "preview":
		previewCmd.Parse(os.Args[2:])
		if *previewID == "" {
			fmt.Println("Error: -id flag is required for preview command")
			previewCmd.Usage()
			return
		}
		handlePreviewPrototype(previewEngine, *previewID)
	case "export":
		exportCmd.Parse(os.Args[2:])
		if *exportID == "" {
			fmt.Println("Error: -id flag is required for export command")
			exportCmd.Usage()
			return
		}
		handleExportPrototype(manager, *exportID, *exportDir)
	case "import":
		importCmd.Parse(os.Args[2:])
		if *importFile == "" {
			fmt.Println("Error: -file flag is required for import command")
			importCmd.Usage()
			return
		}
		handleImportPrototype(manager, ids, clock, *importFile)
	case "templates":
		templatesCmd.Parse(os.Args[2:])
		if *templatesKind == "" {
			fmt.Println("Error: -kind flag is required for templates command")
			templatesCmd.Usage()
			return
		}
		handleListTemplates(library, model.TemplateKind(*templatesKind))
	case "template-delete":
		templateDeleteCmd.Parse(os.Args[2:])
		if *templateDeleteKind == "" || *templateDeleteID == "" {
			fmt.Println("Error: -kind and -id flags are required for template-delete command")
			templateDeleteCmd.Usage()
			return
		}
		handleDeleteTemplate(library, model.TemplateKind(*templateDeleteKind), *templateDeleteID)
	case "instantiate":
		instantiateCmd.Parse(os.Args[2:])
		if *instantiateKind == "" || *instantiateID == "" {
			fmt.Println("Error: -kind and -id flags are required for instantiate command")
			instantiateCmd.Usage()
			return
		}
		handleInstantiateTemplate(manager, library, ids, clock, model.TemplateKind(*instantiateKind), *instantiateID, *instantiateInto)
	case "stats":
		statsCmd.Parse(os.Args[2:])
		handleStats(manager)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
	}

	fmt.Println("\nCLI finished.")
}

func printUsage() {
	fmt.Println("\nUsage: builder-cli <command> [options]")
	fmt.Println("Available commands:")
	fmt.Println("  list          List all known prototypes")
	fmt.Println("  create -name <name> [-desc <description>]")
	fmt.Println("                Create a new prototype")
	fmt.Println("  update -id <id> [-name <name>] [-desc <description>] [-color <color>]")
	fmt.Println("                Update a prototype's metadata")
	fmt.Println("  delete -id <id,...> [-yes]")
	fmt.Println("                Delete prototypes by ID")
	fmt.Println("  duplicate -id <id> [-name <name>]")
	fmt.Println("                Deep-copy a prototype with fresh ids")
	fmt.Println("  preview -id <id>")
	fmt.Println("                Render a prototype to HTML and open it in the browser")
	fmt.Println("  export -id <id> [-out <dir>]")
	fmt.Println("                Write a prototype's JSON document to a file")
	fmt.Println("  import -file <path>")
	fmt.Println("                Import a prototype JSON document (assigns fresh ids)")
	fmt.Println("  templates -kind <question|prototype|applicationStep>")
	fmt.Println("                List templates of one kind")
	fmt.Println("  template-delete -kind <kind> -id <id>")
	fmt.Println("                Delete a template")
	fmt.Println("  instantiate -kind <kind> -id <id> [-prototype <id>]")
	fmt.Println("                Clone a template (into a prototype for step kinds)")
	fmt.Println("  stats         Show storage usage per collection")
}

func handleListPrototypes(manager *prototypemanager.PrototypeManager) {
	fmt.Println("\nListing prototypes...")
	prototypes, err := manager.ListPrototypes()
	if err != nil {
		log.Fatalf("Error listing prototypes: %v", err)
	}
	if len(prototypes) == 0 {
		fmt.Println("No prototypes found.")
		return
	}
	fmt.Println("Found prototypes:")
	for _, p := range prototypes {
		appSteps := 0
		for _, step := range p.Steps {
			if step.IsApplicationStep {
				appSteps++
			}
		}
		fmt.Printf("- ID: %s\n  Name: %s\n  Steps: %d (%d application)\n  Updated: %s\n\n",
			p.ID, p.Name, len(p.Steps), appSteps, p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
}

func handleCreatePrototype(manager *prototypemanager.PrototypeManager, name, description string) {
	fmt.Printf("\nCreating prototype: %s\n", name)
	p, err := manager.CreatePrototype(name, description)
	if err != nil {
		log.Fatalf("Error creating prototype: %v", err)
	}
	fmt.Printf("Successfully created prototype '%s' with ID '%s'\n", p.Name, p.ID)
}

func handleUpdatePrototype(manager *prototypemanager.PrototypeManager, id, name, desc, color string) {
	fmt.Printf("\nUpdating prototype ID: %s\n", id)
	p, err := manager.UpdatePrototype(id, name, desc, color, "")
	if err != nil {
		log.Fatalf("Error updating prototype: %v", err)
	}
	fmt.Printf("Successfully updated prototype '%s' (ID: %s).\n", p.Name, p.ID)
}

// Helper function for confirmation prompts
func askForConfirmation(prompt string) bool {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("%s [y/N]: ", prompt)
		response, err := reader.ReadString('\n')
		if err != nil {
			log.Fatalf("Error reading confirmation: %v", err)
		}
		response = strings.ToLower(strings.TrimSpace(response))
		if response == "y" || response == "yes" {
			return true
		} else if response == "n" || response == "no" || response == "" {
			return false
		}
		// Ask again if input is invalid
	}
}

func handleDeletePrototypes(manager *prototypemanager.PrototypeManager, idList string, skipConfirm bool) {
	ids := strings.Split(idList, ",")
	fmt.Printf("\nAttempting to delete %d prototype ID(s)\n", len(ids))

	successCount := 0
	failCount := 0

	for _, id := range ids {
		trimmedID := strings.TrimSpace(id)
		if trimmedID == "" {
			continue // Skip empty strings resulting from extra commas
		}

		fmt.Printf("--- Processing ID: %s ---\n", trimmedID)
		if !skipConfirm {
			fmt.Printf("WARNING: You are about to permanently delete prototype %s.\n", trimmedID)
			if !askForConfirmation("Are you sure you want to proceed?") {
				fmt.Println("Operation cancelled.")
				continue
			}
		}

		if err := manager.DeletePrototype(trimmedID); err != nil {
			log.Printf("Error deleting prototype %s: %v", trimmedID, err)
			failCount++
			continue
		}
		fmt.Printf("Successfully deleted prototype %s.\n", trimmedID)
		successCount++
	}

	fmt.Printf("\n--- Delete Summary ---\n")
	fmt.Printf("Successfully deleted: %d\n", successCount)
	fmt.Printf("Failed/Skipped: %d\n", failCount)
}

func handleDuplicatePrototype(manager *prototypemanager.PrototypeManager, id, name string) {
	fmt.Printf("\nDuplicating prototype ID: %s\n", id)
	dup, err := manager.DuplicatePrototype(id, name)
	if err != nil {
		log.Fatalf("Error duplicating prototype: %v", err)
	}
	fmt.Printf("Successfully duplicated prototype as '%s' (ID: %s).\n", dup.Name, dup.ID)
}

func handlePreviewPrototype(engine *preview.Engine, id string) {
	fmt.Printf("\nGenerating preview for prototype ID: %s\n", id)

	// 1. Render the prototype into an HTML string
	html, err := engine.RenderPrototype(id)
	if err != nil {
		log.Fatalf("Error generating preview content: %v", err)
	}

	// 2. Create a temporary HTML file
	tempFile, err := os.CreateTemp("", fmt.Sprintf("prototype-preview-%s-*.html", id))
	if err != nil {
		log.Fatalf("Error creating temporary preview file: %v", err)
	}
	defer tempFile.Close()

	// 3. Write the rendered HTML to the temp file
	if _, err := tempFile.WriteString(html); err != nil {
		log.Fatalf("Error writing to temporary preview file: %v", err)
	}

	tempFilePath := tempFile.Name()
	fmt.Printf("Preview HTML saved to: %s\n", tempFilePath)

	// 4. Open the temporary file in the default browser
	if err := openBrowser(tempFilePath); err != nil {
		log.Printf("Warning: Failed to open preview in browser: %v", err)
		fmt.Println("Please open the file manually in your browser.")
	} else {
		fmt.Println("Attempting to open preview in your default browser...")
	}
}

// openBrowser tries to open the given URL/file path in the default browser.
func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		// Use "rundll32" for broader compatibility on Windows
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // "linux", "freebsd", "openbsd", "netbsd"
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start() // Use Start for non-blocking execution
}

func handleExportPrototype(manager *prototypemanager.PrototypeManager, id, outDir string) {
	fmt.Printf("\nExporting prototype ID: %s\n", id)

	p, err := manager.GetPrototype(id)
	if err != nil {
		log.Fatalf("Error loading prototype: %v", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		log.Fatalf("Error marshaling prototype: %v", err)
	}

	filename := fsutils.SanitizeFilename(p.Name) + ".json"
	outPath := filepath.Join(outDir, filename)
	if err := fsutils.WriteToFile(outPath, data); err != nil {
		log.Fatalf("Error writing export file: %v", err)
	}
	fmt.Printf("Exported prototype '%s' to %s\n", p.Name, outPath)
}

func handleImportPrototype(manager *prototypemanager.PrototypeManager, ids model.IDGenerator, clock model.Clock, path string) {
	fmt.Printf("\nImporting prototype from: %s\n", path)

	if !fsutils.FileExists(path) {
		log.Fatalf("Error: file %s does not exist or is not a regular file", path)
	}
	data, err := fsutils.ReadFile(path)
	if err != nil {
		log.Fatalf("Error reading import file: %v", err)
	}
	var p model.Prototype
	if err := json.Unmarshal(data, &p); err != nil {
		log.Fatalf("Error parsing import file: %v", err)
	}

	// Imported documents get fresh ids so re-importing the same file
	// never collides with an existing prototype.
	fresh := model.ClonePrototype(p, ids)
	now := clock.Now()
	fresh.CreatedAt = now
	fresh.UpdatedAt = now
	if err := manager.SavePrototype(&fresh); err != nil {
		log.Fatalf("Error saving imported prototype: %v", err)
	}
	fmt.Printf("Imported prototype '%s' with new ID '%s'\n", fresh.Name, fresh.ID)
}

func handleListTemplates(library *templates.Library, kind model.TemplateKind) {
	fmt.Printf("\nListing %s templates...\n", kind)
	ts, err := library.List(kind)
	if err != nil {
		log.Fatalf("Error listing templates: %v", err)
	}
	if len(ts) == 0 {
		fmt.Println("No templates found.")
		return
	}
	for _, t := range ts {
		fmt.Printf("- ID: %s\n  Name: %s\n  Created: %s\n\n", t.ID, t.Name, t.CreatedAt.Format("2006-01-02 15:04:05"))
	}
}

func handleDeleteTemplate(library *templates.Library, kind model.TemplateKind, id string) {
	fmt.Printf("\nDeleting %s template ID: %s\n", kind, id)
	if err := library.Delete(kind, id); err != nil {
		log.Fatalf("Error deleting template: %v", err)
	}
	fmt.Println("Template deleted.")
}

func handleInstantiateTemplate(manager *prototypemanager.PrototypeManager, library *templates.Library, ids model.IDGenerator, clock model.Clock, kind model.TemplateKind, id, targetPrototypeID string) {
	fmt.Printf("\nInstantiating %s template ID: %s\n", kind, id)

	if kind == model.KindPrototype {
		p, err := library.InstantiatePrototype(id)
		if err != nil {
			log.Fatalf("Error instantiating template: %v", err)
		}
		if err := manager.SavePrototype(p); err != nil {
			log.Fatalf("Error saving instantiated prototype: %v", err)
		}
		fmt.Printf("Created prototype '%s' (ID: %s) from template.\n", p.Name, p.ID)
		return
	}

	if targetPrototypeID == "" {
		log.Fatalf("Error: -prototype flag is required when instantiating step templates")
	}
	step, err := library.InstantiateStep(kind, id)
	if err != nil {
		log.Fatalf("Error instantiating template: %v", err)
	}

	// Insert through an edit session so the step lands in the right
	// partition, then persist immediately.
	p, err := manager.GetPrototype(targetPrototypeID)
	if err != nil {
		log.Fatalf("Error loading target prototype: %v", err)
	}
	session := editor.NewSession(p, ids, clock)
	if !session.InsertStep(*step) {
		log.Fatalf("Error: step could not be inserted into prototype %s", targetPrototypeID)
	}
	snapshot := session.Snapshot()
	if err := manager.SavePrototype(&snapshot); err != nil {
		log.Fatalf("Error saving prototype: %v", err)
	}
	fmt.Printf("Inserted step '%s' (ID: %s) into prototype %s.\n", step.Name, step.ID, targetPrototypeID)
}

func handleStats(manager *prototypemanager.PrototypeManager) {
	fmt.Println("\nStorage usage:")
	stats, err := manager.UsageStats()
	if err != nil {
		log.Fatalf("Error reading storage stats: %v", err)
	}
	for name, coll := range stats.Collections {
		fmt.Printf("- %s: %d document(s), %d bytes\n", name, coll.Documents, coll.Bytes)
	}
	fmt.Printf("Total: %d bytes", stats.TotalBytes)
	if stats.QuotaBytes > 0 {
		fmt.Printf(" of %d byte quota", stats.QuotaBytes)
	}
	fmt.Println()
}
