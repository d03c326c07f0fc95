package sotest_go

// The version number of the current sotest release.
const kSotestVersion = "1.2.0"

const kProgName = "sotest"
