package util

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// creates the parent folder of savePath if missing
func ensureDir(savePath string) error {
	dir := filepath.Dir(savePath)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, os.ModePerm)
}

// takes a save path and a variable number of strings and writes them to file separated by new lines
func WriteToFile(savePath string, content ...string) error {
	if err := ensureDir(savePath); err != nil {
		return err
	}
	singleString := ""
	for i, c := range content {
		if i > 0 {
			singleString += "\n"
		}
		singleString += c
	}

	return os.WriteFile(savePath, []byte(singleString), 0644)
}

func AppendToFile(savePath string, content ...string) error {
	if err := ensureDir(savePath); err != nil {
		return err
	}
	f, err := os.OpenFile(savePath, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0600)
	if err != nil {
		return err
	}

	defer f.Close()

	for _, s := range content {
		if _, err = f.WriteString(s + "\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON marshals v and writes it to savePath
func WriteJSON(savePath string, v interface{}) error {
	bs, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", savePath, err)
	}
	if err := ensureDir(savePath); err != nil {
		return err
	}
	return os.WriteFile(savePath, bs, 0644)
}

// AppendJSON appends v as a single JSON line
func AppendJSON(savePath string, v interface{}) error {
	bs, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", savePath, err)
	}
	return AppendToFile(savePath, string(bs))
}

func ReadJSON(savePath string, v interface{}) error {
	bs, err := os.ReadFile(savePath)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(bs, v); err != nil {
		return fmt.Errorf("unmarshal %s: %w", savePath, err)
	}
	return nil
}
