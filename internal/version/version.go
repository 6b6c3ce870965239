package version

// Version is the current release of the crawler.
const Version = "2.0.0"
