package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Processing %d fight words...":                  "%d 個の効果音ワードを処理中...",
		"Generated %d images in %s":                     "%[2]s に %[1]d 枚の画像を生成しました",
		"Batch completed: %d generated, %d failed":      "バッチ完了: 生成 %d, 失敗 %d",
		"Generating %s...":                              "%s を生成中...",
		"Interrupted, shutting down...":                 "中断されました。シャットダウン中...",
		"Using builtin font":                            "内蔵フォントを使用します",

		// Font resolver
		"Resolved font %s to %s":                        "フォント %s を %s に解決しました",
		"Skipping font root %s: %s":                     "フォントディレクトリ %s をスキップ: %s",
		"Ignoring unparseable font file %s":             "解析できないフォントファイル %s を無視します",

		// Rasterize stage
		"Rendering %q at size %.0f":                     "%q をサイズ %.0f で描画中",
		"Word %q does not fit even at minimum size, clipping": "%q は最小サイズでも収まらないため切り取ります",

		// Distort stage
		"Applying %s distortion to %q":                  "%[2]q に %[1]s 変形を適用中",

		// Binarize stage
		"Binarizing %q with threshold %d":               "%q をしきい値 %d で二値化中",

		// Export stage
		"Wrote %s (%d bytes)":                           "%s を書き込みました (%d バイト)",

		// Warnings
		"Font %q not found, skipping":                   "フォント %q が見つからないためスキップします",
		"No usable fonts, falling back to builtin face": "使用可能なフォントがないため内蔵フォントを使用します",
		"Failed to generate %q: %s":                     "%q の生成に失敗しました: %s",

		// Errors
		"Failed to read word list: %s":                  "ワードリストの読み込みに失敗しました: %s",
		"Failed to write output: %s":                    "出力の書き込みに失敗しました: %s",
	})
}
