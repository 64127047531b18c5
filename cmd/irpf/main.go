package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/marcosgabbardo/irpf-analyzer/internal/analysis"
	"github.com/marcosgabbardo/irpf-analyzer/internal/config"
	"github.com/marcosgabbardo/irpf-analyzer/internal/output"
)

// simpleCLILogger implements analysis.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "irpf %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(os.Stdout, info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "irpf",
	Short: "IRPF declaration analyzer CLI",
	Long:  "Risk and optimization analysis for Brazilian annual income tax declarations",
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [input-file]",
	Short: "Analyze a declaration for audit risks and optimization opportunities",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputFile := args[0]

		parser := config.NewInputParser()
		decl, err := parser.LoadFromFile(inputFile)
		if err != nil {
			log.Fatal(err)
		}

		engine := analysis.NewEngine()
		if rulesFile, _ := cmd.Flags().GetString("rules"); rulesFile != "" {
			table, err := config.LoadRuleTable(rulesFile)
			if err != nil {
				log.Fatal(err)
			}
			engine = analysis.NewEngineWithTable(table)
		}
		debugMode, _ := cmd.Flags().GetBool("debug")
		if debugMode {
			engine.SetLogger(simpleCLILogger{})
		}

		result, err := engine.Analyze(decl)
		if err != nil {
			log.Fatal(err)
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		if err := output.GenerateReport(os.Stdout, decl, result, outputFormat); err != nil {
			log.Fatal(err)
		}
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate a declaration file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputFile := args[0]

		parser := config.NewInputParser()
		if _, err := parser.LoadFromFile(inputFile); err != nil {
			log.Fatal(err)
		}

		fmt.Printf("Declaration file %s is valid\n", inputFile)
	},
}

func init() {
	analyzeCmd.Flags().StringP("format", "f", "console", "Output format (console, json)")
	analyzeCmd.Flags().Bool("debug", false, "Enable debug output for the analyzers")
	analyzeCmd.Flags().String("rules", "", "Rule table YAML for another tax year (default: compiled-in 2025 table)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
