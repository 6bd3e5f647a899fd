package build

// Tag is overridden at link time: -ldflags "-X twitchlink/pkg/build.Tag=v1.2.3"
var Tag = "dev"
