package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/MillPool/internal/model"
)

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version   string          `json:"version"`
	CreatedAt string          `json:"created_at"`
	Config    model.AppConfig `json:"config"`
	Orders    []model.Order   `json:"orders"`
}

// ExportAllData writes the config and every backlog order to a single JSON file.
func ExportAllData(exportPath string, config model.AppConfig, backlog *Backlog) error {
	backup := BackupData{
		Version:   "1.0.0",
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Orders:    backlog.Orders(),
	}
	if backup.Orders == nil {
		backup.Orders = []model.Order{}
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup data: %w", err)
	}

	dir := filepath.Dir(exportPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	if err := os.WriteFile(exportPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller is responsible for applying the imported config and orders.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	backup := BackupData{Config: model.DefaultAppConfig()}
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	backup.Config = backup.Config.Normalize()
	return backup, nil
}

// RestoreAllData imports a backup, replaces the backlog contents and returns
// the config stored in it.
func RestoreAllData(importPath string, backlog *Backlog) (model.AppConfig, error) {
	backup, err := ImportAllData(importPath)
	if err != nil {
		return model.AppConfig{}, err
	}
	if err := backlog.Replace(backup.Orders); err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to restore orders: %w", err)
	}
	return backup.Config, nil
}
