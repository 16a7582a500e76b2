// Package acquire downloads and trims audio from URLs, producing local files
// for the chapter upload workflow. It is a thin shell over external tools
// (yt-dlp for download and extraction, ffmpeg for trimming) behind the narrow
// Fetcher interface, so the rest of the client never depends on tool names or
// invocation syntax.
package acquire
