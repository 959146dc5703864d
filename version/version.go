package version

// Version is the current rolodex release.
const Version = "0.1.0"
