package cli

import "github.com/viant/authclient"

type Options struct {
	authclient.Options
	ConfigFile string `short:"c" long:"config" description:"config file (yaml, json)"`
	Verbose    bool   `short:"v" long:"verbose" description:"debug logging"`
	Browser    bool   `long:"browser" description:"open login redirects in the system browser"`

	Login  *LoginCommand  `command:"login" description:"sign in with email and password"`
	Logout *LogoutCommand `command:"logout" description:"sign out"`
	Status *StatusCommand `command:"status" description:"print session status"`
	Get    *GetCommand    `command:"get" description:"issue GET with the selected client"`
}

type LogoutCommand struct{}

type StatusCommand struct{}

type LoginCommand struct {
	Email     string `short:"e" long:"email" description:"account email"`
	Password  string `short:"p" long:"password" description:"account password"`
	SecretURL string `short:"s" long:"secret" description:"encrypted credentials location (scy)"`
	SecretKey string `short:"k" long:"key" description:"credentials encryption key" default:"blowfish://default"`
}

type GetCommand struct {
	API  string `short:"a" long:"api" description:"target api" choice:"app" choice:"github" choice:"internal" default:"app"`
	Args struct {
		Path string `positional-arg-name:"path" required:"yes"`
	} `positional-args:"yes" required:"yes"`
}
