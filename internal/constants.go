package internal

const COOKIE_REDIRECT_NAME = "pawhaven_redirect"
