package roster

// Name is the application name shown in version and receipt output.
const Name = "roster"

// Version is the release version.
const Version = "0.4.0"
