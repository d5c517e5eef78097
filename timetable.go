/*
	Project: Timetable - school timetable management (Thai secondary schools, M.1-M.6)
*/
package timetable

/*
Layout:
	- apps/api: echo API server + single-page frontend pages (cmd)
	- apps/admin: admin CLI (adduser, resetpassword, migrate, fetch)
	- client: HTTP client of the API
	- core: config, errors, validators, mail templates
		* core/user: users, roles, password reset
		* core/session: request session + route group guard
		* core/school: teachers, rooms, subjects, programs, grade levels, timeslots, schedules, locks, configs
	- services: logger (rollbar), email (console | sendgrid)
	- storage/database: postgres pool & migrations; sqlboiler (prod) & inmem (tests) repositories

TODO: conflict detection (`GET /api/class/conflicts`): teacher & room double-booking per timeslot
TODO: rate limit `/api/auth/signin`, `/api/auth/password-reset` & `/api/auth/password-reset-confirm`
TODO: CSV import of teachers & subjects (admin CLI)
*/
