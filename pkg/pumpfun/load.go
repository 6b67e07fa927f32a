package pumpfun

import (
	"fmt"
	"os"
)

// LoadTransactionDocument reads a transaction document from a JSON file
func LoadTransactionDocument(path string) (TransactionDocument, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return TransactionDocument{}, fmt.Errorf("failed to read transaction file: %w", err)
	}
	return ParseTransactionDocument(raw)
}
