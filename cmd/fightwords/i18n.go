// Package main provides localization for the fightwords CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Generate comic-style fight word bitmaps for monochrome OLED displays": "モノクロOLED向けのコミック風効果音ビットマップを生成",

		// Generate command
		"Generate one distorted bitmap per word from a word list":                               "ワードリストから1ワードにつき1枚の変形ビットマップを生成",
		"YAML configuration file":                                                               "YAML設定ファイル",
		"Output directory (default: output)":                                                    "出力ディレクトリ（デフォルト: output）",
		"Comma-separated list of font paths or names":                                           "フォントパスまたは名前のカンマ区切りリスト",
		"Font search directory (repeatable, replaces system defaults)":                          "フォント検索ディレクトリ（複数指定可、システム既定を置き換え）",
		"Comma-separated distortions to apply (shear,fisheye,perspective), or none. Default: all": "適用する変形のカンマ区切りリスト（shear,fisheye,perspective）または none。デフォルト: 全て",
		"Reverse colors (white text on black background)":                                       "色を反転（黒背景に白文字）",
		"Use a hard threshold instead of Floyd-Steinberg dithering":                             "Floyd-Steinbergディザの代わりにしきい値で二値化",
		"Binarization threshold (1-255, default: 128)":                                          "二値化しきい値（1-255、デフォルト: 128）",
		"Output format: png or pbm (default: png)":                                              "出力形式: png または pbm（デフォルト: png）",
		"Output width in pixels (default: 128)":                                                 "出力幅（ピクセル、デフォルト: 128）",
		"Output height in pixels (default: 64)":                                                 "出力高さ（ピクセル、デフォルト: 64）",
		"Render at a multiple of the output size (default: 1)":                                  "出力サイズの倍数で描画（デフォルト: 1）",
		"Draw a randomized starburst background":                                                "ランダムな集中線背景を描画",
		"Maximum random rotation in degrees (0 disables, default: 15)":                          "ランダム回転の最大角度（0で無効、デフォルト: 15）",
		"Random seed for reproducible runs (0 = random)":                                        "再現可能な実行のための乱数シード（0 = ランダム）",
		"Parallel workers (0 = number of CPUs)":                                                 "並列ワーカー数（0 = CPU数)",
		"Save per-stage intermediate images":                                                    "ステージごとの中間画像を保存",
		"Directory for debug output":                                                            "デバッグ出力のディレクトリ",
		"Log level (debug, info, warn, error)":                                                  "ログレベル（debug, info, warn, error）",
		"Suppress all log output":                                                               "全てのログ出力を抑制",

		// Convert command
		"Convert generated PNG images to device-native PBM P4 bitmaps": "生成したPNG画像をデバイス用PBM P4ビットマップに変換",
		"Output directory for PBM files (default: pbms)":               "PBMファイルの出力ディレクトリ（デフォルト: pbms）",
		"Failed to convert %s: %s":                                     "%s の変換に失敗しました: %s",
		"Converted %d images to %s":                                    "%d 枚の画像を %s に変換しました",
	})
}
