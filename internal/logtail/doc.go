// Package logtail reads the end of platter's log file for the activity
// overlay.
//
// Read keeps a ring buffer of maxLines entries, so only one pass over the file
// is needed and memory stays bounded regardless of file size. A missing file is
// not an error.
//
//	lines, err := logtail.Read(cfg.LogFile, 200)
//	for _, line := range lines {
//		e := logtail.Parse(line) // time=… level=ERROR msg="save failed" name=…
//		fmt.Println(e.Level, e.Summary())
//	}
//
// Parse understands the log/slog text handler format. Anything else is
// returned untouched in Message.
package logtail
