package botcmd

// Version is the release of the botcmd module.
const Version = "0.4.0"
