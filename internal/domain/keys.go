package domain

// KeyPrefix namespaces all reelsearch keys in the shared database.
const KeyPrefix = "reelsearch:"
