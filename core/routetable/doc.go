// Package routetable loads route declarations from YAML and registers them
// into a router.Router[string], where each route handle is the declared name.
//
// A table looks like this:
//
//	routes:
//	  - name: list-users
//	    method: GET
//	    pattern: /users
//	  - name: user
//	    methods: [GET, PUT, DELETE]
//	    pattern: /users/{id:[0-9]+}
//	  - name: assets
//	    pattern: /static/*filepath   # no method means every method
//
// Values of the form ${VAR} or ${VAR:-default} are replaced from the
// environment before parsing.
package routetable
