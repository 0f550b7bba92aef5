package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"invitation_backend/config"
	"invitation_backend/models"
	"invitation_backend/service"
	"invitation_backend/utils"

	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	offerName   string
	filePath    string
	title       string
	description string
	batchSize   int
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "import-codes",
		Short:        "bulk import invitation codes into an offer",
		Long:         "Reads a newline-delimited list of invitation codes and imports them into the named offer, creating the offer when it does not exist yet.",
		SilenceUsage: true,
		RunE:         runImport,
	}
	cmd.Flags().StringVarP(&offerName, "offer", "o", "", "offer name")
	cmd.Flags().StringVarP(&filePath, "file", "f", "", "path of the code list file")
	cmd.Flags().StringVarP(&title, "title", "t", "", "offer title, used only when creating a new offer")
	cmd.Flags().StringVarP(&description, "description", "d", "", "offer description, used only when creating a new offer")
	cmd.Flags().IntVar(&batchSize, "batch-size", 100, "codes per import batch")
	_ = cmd.MarkFlagRequired("offer")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	codes, err := readCodes(filePath)
	if err != nil {
		return err
	}
	if len(codes) == 0 {
		return fmt.Errorf("no codes found in %s", filePath)
	}
	fmt.Printf("found %d codes in %s\n", len(codes), filePath)

	config.InitConfig()
	models.InitDB()

	err = ensureOffer(offerName)
	if err != nil {
		return err
	}

	var newTotal, duplicateTotal, processedTotal int
	for start := 0; start < len(codes); start += batchSize {
		end := start + batchSize
		if end > len(codes) {
			end = len(codes)
		}
		result, err := service.ImportCodes(offerName, codes[start:end])
		if err != nil {
			// a failed batch does not touch what earlier batches committed
			fmt.Fprintf(os.Stderr, "batch %d-%d failed: %v\n", start, end, err)
			continue
		}
		newTotal += result.NewCodes
		duplicateTotal += result.DuplicateCodes
		processedTotal += result.TotalProcessed
	}

	fmt.Println("import finished")
	fmt.Printf("  new:        %d\n", newTotal)
	fmt.Printf("  duplicate:  %d\n", duplicateTotal)
	fmt.Printf("  processed:  %d\n", processedTotal)

	offer, err := models.GetOfferByName(models.DB, offerName)
	if err != nil {
		return err
	}
	fmt.Printf("offer %q now holds %d codes, %d remaining\n",
		offer.Name, offer.TotalCount, offer.RemainingCount)
	return nil
}

// ensureOffer creates the offer on first import. The upsert lives here at
// the CLI boundary; the import engine itself requires an existing offer.
func ensureOffer(name string) error {
	_, err := models.GetOfferByName(models.DB, name)
	if err == nil {
		fmt.Printf("using existing offer %q\n", name)
		return nil
	}
	if !errors.Is(err, utils.ErrOfferAbsent) {
		return err
	}

	if title == "" {
		title = cases.Title(language.English).String(name) + " Invitation Codes"
	}
	if description == "" {
		description = fmt.Sprintf("invitation codes for the %s campaign", name)
	}

	fmt.Printf("creating offer %q\n", name)
	_, err = models.CreateOffer(models.DB, name, title, description)
	if err != nil {
		return pkgerrors.WithMessagef(err, "create offer %s", name)
	}
	return nil
}

func readCodes(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, pkgerrors.WithMessage(err, "open code list")
	}
	defer file.Close()

	var codes []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		codes = append(codes, line)
	}
	if err = scanner.Err(); err != nil {
		return nil, pkgerrors.WithMessage(err, "read code list")
	}
	return codes, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
