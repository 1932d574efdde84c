package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

type translateResponse struct {
	Success          bool   `json:"success"`
	Original         string `json:"original"`
	Translated       string `json:"translated"`
	DetectedLanguage string `json:"detected_language"`
	Minutes          string `json:"minutes"`
}

func newTranslateCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "translate [file|-]",
		Short: "文字起こしを翻訳して議事録を作成",
		Long:  "ファイル、または標準入力 (\"-\" か省略時) から英文の文字起こしを読み込み、日本語議事録を出力します。",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := LoadConfig(cmd)
			client := NewAPIClient(cfg)

			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			text, err := readTranscript(cmd.InOrStdin(), path)
			if err != nil {
				return err
			}

			resp, err := client.Post(cmd.Context(), "/api/translate", map[string]string{"text": text})
			if err != nil {
				return err
			}

			var result translateResponse
			if err := json.Unmarshal(resp, &result); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			if docxPath, _ := cmd.Flags().GetString("docx"); docxPath != "" {
				title, _ := cmd.Flags().GetString("title")
				data, err := client.Post(cmd.Context(), "/api/export/docx", map[string]string{
					"minutes": result.Minutes,
					"title":   title,
				})
				if err != nil {
					return fmt.Errorf("export docx: %w", err)
				}
				if err := os.WriteFile(docxPath, data, 0o644); err != nil {
					return fmt.Errorf("write docx: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "docx written to %s\n", docxPath)
			}

			if cfg.Output == "json" {
				return printOutput(cmd.OutOrStdout(), cfg.Output, resp)
			}
			return printOutput(cmd.OutOrStdout(), cfg.Output, []byte(result.Minutes))
		},
	}
	c.Flags().String("docx", "", "議事録を docx として保存するパス")
	c.Flags().String("title", "", "docx のタイトル (既定: 議事録)")
	return c
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "サーバーの稼働確認",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := LoadConfig(cmd)
			client := NewAPIClient(cfg)
			resp, err := client.Get(cmd.Context(), "/api/health")
			if err != nil {
				return err
			}
			return printOutput(cmd.OutOrStdout(), cfg.Output, resp)
		},
	}
}

// readTranscript 读取文件内容，"-" 表示标准输入
func readTranscript(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	return string(data), nil
}
