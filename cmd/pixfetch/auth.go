package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pixfetch/pkg/auth"
	"pixfetch/pkg/ui"
)

// authCmd represents the auth command
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage Pexels API keys",
	Long: `Manage stored Pexels API keys securely.

API keys are stored using:
  - System keychain (when available)
  - Encrypted file with PBKDF2 key derivation
  - Environment variables (read-only fallback)

Never share your API keys or config files!`,
}

// loginCmd represents the auth login command
var loginCmd = &cobra.Command{
	Use:   "login [name]",
	Short: "Store a Pexels API key securely",
	Long: `Store a Pexels API key securely in the system keychain or encrypted file.

You will be prompted for:
  - A name for the key (if not provided, "default" is used)
  - The API key itself (hidden as you type)

To get an API key:
1. Create a free account at https://www.pexels.com/api/
2. Copy the key from your account dashboard`,
	Example: `  # Store the default API key
  pixfetch auth login

  # Store a named key
  pixfetch auth login work`,
	Args: cobra.MaximumNArgs(1),
	Run:  runLogin,
}

// logoutCmd represents the auth logout command
var logoutCmd = &cobra.Command{
	Use:   "logout [name]",
	Short: "Remove a stored API key",
	Long: `Remove a stored Pexels API key.

If no name is provided, you will be shown a list of stored keys to
choose from.`,
	Example: `  # Interactive logout
  pixfetch auth logout

  # Remove a specific key
  pixfetch auth logout work`,
	Args: cobra.MaximumNArgs(1),
	Run:  runLogout,
}

// authListCmd represents the auth list command
var authListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored API keys",
	Long:  `List all stored Pexels API keys with their values masked.`,
	Run:   runAuthList,
}

// statusCmd represents the auth status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which API key sources are available",
	Long:  `Show which credential sources are available and whether a usable API key was found.`,
	Run:   runAuthStatus,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(authListCmd)
	authCmd.AddCommand(statusCmd)
}

func runLogin(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		ui.PrintError("Failed to initialize credential manager", err.Error())
		os.Exit(1)
	}

	name := auth.DefaultName
	if len(args) > 0 {
		name = strings.TrimSpace(args[0])
	}
	if name == "" {
		ui.PrintError("Key name is required", "")
		os.Exit(1)
	}

	reader := bufio.NewReader(os.Stdin)

	if existing, _ := manager.Retrieve(name); existing != nil {
		fmt.Printf("Key '%s' already exists. Update it? (y/N): ", name)
		input, _ := reader.ReadString('\n')
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(input)), "y") {
			return
		}
	}

	var apiKey string
	for {
		fmt.Print("Pexels API key (hidden): ")
		apiKey, err = readPassword()
		if err != nil {
			ui.PrintError("Failed to read API key", err.Error())
			os.Exit(1)
		}

		if len(apiKey) < 20 {
			fmt.Println("\nThat doesn't look like a valid Pexels API key.")
			fmt.Println("It should be a long alphanumeric string from your Pexels dashboard.")
			fmt.Print("\nTry again? (Y/n): ")
			retry, _ := reader.ReadString('\n')
			if strings.ToLower(strings.TrimSpace(retry)) == "n" {
				os.Exit(1)
			}
			continue
		}
		break
	}

	cred := &auth.Credential{
		Name:         name,
		APIKey:       apiKey,
		LastModified: time.Now(),
	}

	fmt.Println("\nStoring API key securely...")
	if err := manager.Store(cred); err != nil {
		ui.PrintError("Failed to store API key", err.Error())
		os.Exit(1)
	}

	ui.PrintSuccess(fmt.Sprintf("API key saved: %s (%s)", name, maskKey(apiKey)))
	fmt.Println("\nQuick start:")
	fmt.Println("  $ pixfetch fetch mountains")
	if name != auth.DefaultName {
		fmt.Printf("  $ pixfetch fetch mountains --account %s\n", name)
	}
}

func runLogout(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		ui.PrintError("Failed to initialize credential manager", err.Error())
		os.Exit(1)
	}

	if len(args) > 0 {
		name := strings.TrimSpace(args[0])
		if err := manager.Delete(name); err != nil {
			ui.PrintError("Failed to remove key", err.Error())
			os.Exit(1)
		}
		ui.PrintSuccess("API key removed: " + name)
		return
	}

	creds, err := manager.List()
	if err != nil || len(creds) == 0 {
		ui.PrintError("No stored API keys found", "")
		return
	}

	reader := bufio.NewReader(os.Stdin)

	if len(creds) == 1 {
		cred := creds[0]
		fmt.Printf("Remove key '%s'? (y/N): ", cred.Name)
		input, _ := reader.ReadString('\n')
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(input)), "y") {
			return
		}
		if err := manager.Delete(cred.Name); err != nil {
			ui.PrintError("Failed to remove key", err.Error())
			os.Exit(1)
		}
		ui.PrintSuccess("API key removed: " + cred.Name)
		return
	}

	fmt.Println("Select key to remove:")
	for i, cred := range creds {
		fmt.Printf("  %d. %s\n", i+1, cred.Name)
	}
	fmt.Printf("  0. Cancel\n\n")

	fmt.Print("Choice: ")
	input, _ := reader.ReadString('\n')

	var choice int
	fmt.Sscanf(strings.TrimSpace(input), "%d", &choice)

	if choice < 1 || choice > len(creds) {
		return
	}

	name := creds[choice-1].Name
	if err := manager.Delete(name); err != nil {
		ui.PrintError("Failed to remove key", err.Error())
		os.Exit(1)
	}
	ui.PrintSuccess("API key removed: " + name)
}

func runAuthList(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		ui.PrintError("Failed to initialize credential manager", err.Error())
		os.Exit(1)
	}

	creds, err := manager.List()
	if err != nil {
		ui.PrintError("Failed to list API keys", err.Error())
		os.Exit(1)
	}

	if len(creds) == 0 {
		fmt.Println("No stored API keys. Run 'pixfetch auth login' to add one.")
		return
	}

	fmt.Printf("Stored API keys (%d):\n\n", len(creds))
	for _, cred := range creds {
		fmt.Printf("  %s\n", ui.Cyan(cred.Name))
		fmt.Printf("    Key: %s\n", maskKey(cred.APIKey))
		if !cred.LastModified.IsZero() {
			fmt.Printf("    Modified: %s\n", cred.LastModified.Format("2006-01-02 15:04"))
		}
		fmt.Println()
	}
}

func runAuthStatus(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		ui.PrintError("Failed to initialize credential manager", err.Error())
		os.Exit(1)
	}

	if os.Getenv("PIXFETCH_API_KEY") != "" || os.Getenv("PEXELS_API_KEY") != "" {
		ui.PrintInfo("Environment", "API key set")
	} else {
		ui.PrintInfo("Environment", "no API key")
	}

	cred, err := manager.RetrieveDefault()
	if err != nil {
		ui.PrintWarning("No usable API key found")
		fmt.Println("\nRun 'pixfetch auth login' to store one.")
		return
	}

	ui.PrintSuccess(fmt.Sprintf("Active key: %s (%s)", cred.Name, maskKey(cred.APIKey)))
}

// readPassword reads a line of input without echoing it.
func readPassword() (string, error) {
	data, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println()
	return strings.TrimSpace(string(data)), nil
}

// maskKey shows only the first and last few characters of a key.
func maskKey(key string) string {
	if len(key) < 12 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
