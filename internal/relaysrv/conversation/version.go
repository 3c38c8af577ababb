package conversation

// Version is the conversation API version.
const Version = "0.1.0"
